package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/repo"
)

// Summarizer produces a short AI summary for journal text.
// Implemented by itinerary.Summarizer; tests inject a stub.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// JournalService implements business logic for journal entries.
// The summarizer is optional: when nil, entries are created without an AI
// summary. A summarizer failure is logged and swallowed — losing the summary
// must never lose the entry.
type JournalService struct {
	entries    repo.JournalRepo
	summarizer Summarizer
}

// NewJournalService constructs a JournalService. summarizer may be nil.
func NewJournalService(entries repo.JournalRepo, summarizer Summarizer) *JournalService {
	return &JournalService{entries: entries, summarizer: summarizer}
}

// CreateEntryInput carries the caller-supplied fields for a new entry.
type CreateEntryInput struct {
	Title     string
	Content   string
	Latitude  float64
	Longitude float64
	PhotoURL  string
	IsPublic  bool
}

// CreateEntry persists a new journal entry for the user. Public entries get
// a random shareable link; an AI summary is attached when a summarizer is
// configured and the entry has content.
func (s *JournalService) CreateEntry(ctx context.Context, user domain.User, in CreateEntryInput) (domain.JournalEntry, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.CreateEntry: %w: title is required", domain.ErrValidation)
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.CreateEntry: %w", err)
	}

	entry := domain.JournalEntry{
		UserID:    user.ID,
		Title:     in.Title,
		Content:   in.Content,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		PhotoURL:  in.PhotoURL,
		IsPublic:  in.IsPublic,
	}
	if in.IsPublic {
		entry.ShareableLink = uuid.NewString()
	}
	if s.summarizer != nil && strings.TrimSpace(in.Content) != "" {
		summary, err := s.summarizer.Summarize(ctx, in.Content)
		if err != nil {
			slog.WarnContext(ctx, "journal summary generation failed", "error", err)
		} else {
			entry.AISummary = summary
		}
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.CreateEntry: %w", err)
	}
	return created, nil
}

// ListForUser returns the user's entries, newest first.
// Always returns a non-nil slice.
func (s *JournalService) ListForUser(ctx context.Context, user domain.User) ([]domain.JournalEntry, error) {
	entries, err := s.entries.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service.JournalService.ListForUser: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// ListPublic returns a page of public entries, newest first.
func (s *JournalService) ListPublic(ctx context.Context, page domain.PaginationParams) ([]domain.JournalEntry, error) {
	entries, err := s.entries.ListPublic(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service.JournalService.ListPublic: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// ListNear returns public entries within radiusKm of the coordinate,
// nearest first.
func (s *JournalService) ListNear(ctx context.Context, lat, lng, radiusKm float64) ([]domain.JournalEntry, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("service.JournalService.ListNear: %w", err)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("service.JournalService.ListNear: %w: radiusKm must be positive", domain.ErrValidation)
	}
	entries, err := s.entries.ListNear(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("service.JournalService.ListNear: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// GetShared returns the public entry behind a shareable link.
func (s *JournalService) GetShared(ctx context.Context, link string) (domain.JournalEntry, error) {
	entry, err := s.entries.GetByShareableLink(ctx, link)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("service.JournalService.GetShared: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes one of the user's own entries.
func (s *JournalService) DeleteEntry(ctx context.Context, user domain.User, entryID uuid.UUID) error {
	if err := s.entries.Delete(ctx, user.ID, entryID); err != nil {
		return fmt.Errorf("service.JournalService.DeleteEntry: %w", err)
	}
	return nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}
