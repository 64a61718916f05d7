package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// systemPrompt is the fixed system instruction sent with every generation.
const systemPrompt = "generate trip plans"

// Token budget for the generation. Responses grow with the number of days,
// so the cap scales linearly with a floor for very short trips.
const (
	baseTokens   = 1500
	tokensPerDay = 700
)

// ClientConfig holds the knobs for the completion API call.
type ClientConfig struct {
	// Endpoint is the full URL of the chat-completion endpoint.
	Endpoint string
	// APIKey is sent as a bearer token.
	APIKey string
	// Model names the completion model to use.
	Model string
	// RequestTimeout bounds the whole call. Generations scale with day count,
	// so this is on the order of minutes.
	RequestTimeout time.Duration
	// ConnectTimeout bounds connection establishment only, and is much
	// shorter than RequestTimeout so a dead endpoint fails fast.
	ConnectTimeout time.Duration
}

// Client calls the external chat-completion API and returns the raw response
// envelope. It deliberately does not decode the envelope — that is the
// parser's contract — and it never retries: an upstream failure is fatal for
// the request that triggered it.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClient constructs a Client. Zero timeouts get production defaults
// (3 minutes request, 10 seconds connect).
func NewClient(cfg ClientConfig) *Client {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 3 * time.Minute
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
	}
}

// chatRequest is the completion API request body.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat chatFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

// Generate sends the prompt to the completion endpoint and returns the raw
// envelope body. days sizes the token budget. Any non-2xx status, empty body,
// or transport failure wraps domain.ErrUpstream.
func (c *Client) Generate(ctx context.Context, prompt string, days int) (string, error) {
	if days < 1 {
		days = 1
	}
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      baseTokens + days*tokensPerDay,
		ResponseFormat: chatFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("itinerary.Client.Generate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("itinerary.Client.Generate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("itinerary.Client.Generate: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("itinerary.Client.Generate: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("itinerary.Client.Generate: read body: %v: %w", err, domain.ErrUpstream)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", fmt.Errorf("itinerary.Client.Generate: empty response body: %w", domain.ErrUpstream)
	}

	return string(raw), nil
}
