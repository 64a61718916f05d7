package itinerary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// The client always requests strict JSON-object output, so the summary is
// asked for as a one-field object rather than free text.
const summaryPrompt = `Summarize the following travel journal entry in at most three sentences, keeping place names intact. Respond with a single JSON object exactly matching this shape: {"summary":"..."}

`

// Summarizer generates short summaries of journal text through the same
// completion client the trip pipeline uses.
type Summarizer struct {
	client *Client
}

// NewSummarizer wraps a completion client for journal summaries.
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize returns a short summary of text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	raw, err := s.client.Generate(ctx, summaryPrompt+text, 1)
	if err != nil {
		return "", fmt.Errorf("itinerary.Summarizer.Summarize: %w", err)
	}
	content, err := Content(raw)
	if err != nil {
		return "", fmt.Errorf("itinerary.Summarizer.Summarize: %w", err)
	}

	var payload struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil || payload.Summary == nil {
		return "", fmt.Errorf("itinerary.Summarizer.Summarize: decode summary: %w", domain.ErrMalformedItinerary)
	}
	return *payload.Summary, nil
}
