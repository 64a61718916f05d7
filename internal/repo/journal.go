package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// JournalRepo defines the persistence operations for JournalEntries.
type JournalRepo interface {
	// Create inserts a new entry and returns the persisted record.
	Create(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)

	// ListByUser returns all entries owned by the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error)

	// ListPublic returns a page of public entries, newest first.
	ListPublic(ctx context.Context, page domain.PaginationParams) ([]domain.JournalEntry, error)

	// ListNear returns public entries within radiusKm of (lat, lng),
	// nearest first. Distance is great-circle (haversine), computed in SQL.
	ListNear(ctx context.Context, lat, lng, radiusKm float64) ([]domain.JournalEntry, error)

	// GetByShareableLink retrieves a public entry by its share token.
	// Returns domain.ErrNotFound if no entry carries that link.
	GetByShareableLink(ctx context.Context, link string) (domain.JournalEntry, error)

	// Delete removes an entry by ID, scoped to the owning user.
	// Returns domain.ErrNotFound if no entry with that ID exists for that user.
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type pgJournalRepo struct {
	db db
}

// NewJournalRepo constructs a JournalRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewJournalRepo(db db) JournalRepo {
	return &pgJournalRepo{db: db}
}

const journalColumns = `id, user_id, title, content, latitude, longitude,
	photo_url, ai_summary, is_public, shareable_link, created_at`

func (r *pgJournalRepo) Create(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	const q = `
		INSERT INTO journal_entries
			(user_id, title, content, latitude, longitude, photo_url, ai_summary, is_public, shareable_link)
		VALUES
			(@user_id, @title, @content, @latitude, @longitude, @photo_url, @ai_summary, @is_public, @shareable_link)
		RETURNING ` + journalColumns

	args := pgx.NamedArgs{
		"user_id":        entry.UserID,
		"title":          entry.Title,
		"content":        entry.Content,
		"latitude":       entry.Latitude,
		"longitude":      entry.Longitude,
		"photo_url":      entry.PhotoURL,
		"ai_summary":     entry.AISummary,
		"is_public":      entry.IsPublic,
		"shareable_link": nullIfEmpty(entry.ShareableLink),
	}

	result, err := scanJournalEntry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgJournalRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error) {
	q := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	return r.queryEntries(ctx, "ListByUser", q, pgx.NamedArgs{"user_id": userID})
}

func (r *pgJournalRepo) ListPublic(ctx context.Context, page domain.PaginationParams) ([]domain.JournalEntry, error) {
	q := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE is_public
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	return r.queryEntries(ctx, "ListPublic", q, pgx.NamedArgs{
		"limit":  page.Limit,
		"offset": page.Offset(),
	})
}

func (r *pgJournalRepo) ListNear(ctx context.Context, lat, lng, radiusKm float64) ([]domain.JournalEntry, error) {
	// Haversine distance in km; 6371 is the mean Earth radius. least() guards
	// acos against floating-point drift just above 1.0.
	q := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE is_public
		  AND 6371 * acos(least(1.0,
				cos(radians(@lat)) * cos(radians(latitude)) *
				cos(radians(longitude) - radians(@lng)) +
				sin(radians(@lat)) * sin(radians(latitude))
			)) <= @radius_km
		ORDER BY 6371 * acos(least(1.0,
				cos(radians(@lat)) * cos(radians(latitude)) *
				cos(radians(longitude) - radians(@lng)) +
				sin(radians(@lat)) * sin(radians(latitude))
			))`

	return r.queryEntries(ctx, "ListNear", q, pgx.NamedArgs{
		"lat":       lat,
		"lng":       lng,
		"radius_km": radiusKm,
	})
}

func (r *pgJournalRepo) GetByShareableLink(ctx context.Context, link string) (domain.JournalEntry, error) {
	q := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE shareable_link = @link AND is_public`

	result, err := scanJournalEntry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"link": link}))
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("repo.JournalRepo.GetByShareableLink: %w", err)
	}
	return result, nil
}

func (r *pgJournalRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	const q = `DELETE FROM journal_entries WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": entryID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.JournalRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgJournalRepo) queryEntries(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.JournalEntry, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.JournalRepo.%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.JournalRepo.%s: rows: %w", op, err)
	}
	return entries, nil
}

// nullIfEmpty maps "" to SQL NULL so the partial unique index on
// shareable_link never sees empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanJournalEntry(s scanner) (domain.JournalEntry, error) {
	var (
		e      domain.JournalEntry
		id     pgtype.UUID
		userID pgtype.UUID
		link   pgtype.Text
	)
	err := s.Scan(&id, &userID, &e.Title, &e.Content, &e.Latitude, &e.Longitude,
		&e.PhotoURL, &e.AISummary, &e.IsPublic, &link, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JournalEntry{}, domain.ErrNotFound
		}
		return domain.JournalEntry{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	if link.Valid {
		e.ShareableLink = link.String
	}
	return e, nil
}
