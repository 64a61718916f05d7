package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/repo"
)

// entryFixture returns a private Sydney-based journal entry for userID.
func entryFixture(userID uuid.UUID) domain.JournalEntry {
	return domain.JournalEntry{
		UserID:    userID,
		Title:     "Bondi sunrise",
		Content:   "Caught the first light over the water.",
		Latitude:  -33.8908,
		Longitude: 151.2743,
		PhotoURL:  "https://photos.example.com/bondi.jpg",
	}
}

func TestJournalRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	input := entryFixture(user.ID)
	input.AISummary = "A sunrise at Bondi."

	got, err := entries.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Content, got.Content)
	assert.Equal(t, input.PhotoURL, got.PhotoURL)
	assert.Equal(t, "A sunrise at Bondi.", got.AISummary)
	assert.False(t, got.IsPublic)
	assert.Empty(t, got.ShareableLink)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestJournalRepo_Create_PublicWithLink(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	input := entryFixture(user.ID)
	input.IsPublic = true
	input.ShareableLink = uuid.NewString()

	got, err := entries.Create(ctx, input)

	require.NoError(t, err)
	assert.True(t, got.IsPublic)
	assert.Equal(t, input.ShareableLink, got.ShareableLink)
}

func TestJournalRepo_Create_DuplicateShareableLink(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	link := uuid.NewString()
	first := entryFixture(user.ID)
	first.IsPublic = true
	first.ShareableLink = link
	_, err := entries.Create(ctx, first)
	require.NoError(t, err)

	second := entryFixture(user.ID)
	second.IsPublic = true
	second.ShareableLink = link
	_, err = entries.Create(ctx, second)
	assert.Error(t, err, "shareable links are unique")
}

func TestJournalRepo_ListByUser(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	alice := createTestUser(t, tx, "alice")
	bob := createTestUser(t, tx, "bob")

	_, err := entries.Create(ctx, entryFixture(alice.ID))
	require.NoError(t, err)
	_, err = entries.Create(ctx, entryFixture(bob.ID))
	require.NoError(t, err)

	got, err := entries.ListByUser(ctx, alice.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].UserID)
}

func TestJournalRepo_ListPublic_ExcludesPrivate(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	private := entryFixture(user.ID)
	_, err := entries.Create(ctx, private)
	require.NoError(t, err)

	public := entryFixture(user.ID)
	public.Title = "Public walk"
	public.IsPublic = true
	public.ShareableLink = uuid.NewString()
	_, err = entries.Create(ctx, public)
	require.NoError(t, err)

	got, err := entries.ListPublic(ctx, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Public walk", got[0].Title)
}

func TestJournalRepo_ListPublic_Pagination(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	for i := 0; i < 3; i++ {
		e := entryFixture(user.ID)
		e.IsPublic = true
		e.ShareableLink = uuid.NewString()
		_, err := entries.Create(ctx, e)
		require.NoError(t, err)
	}

	page, limit := 2, 2
	got, err := entries.ListPublic(ctx, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, got, 1, "second page of three entries at limit 2")
}

func TestJournalRepo_ListNear(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	sydney := entryFixture(user.ID)
	sydney.IsPublic = true
	sydney.ShareableLink = uuid.NewString()
	_, err := entries.Create(ctx, sydney)
	require.NoError(t, err)

	melbourne := entryFixture(user.ID)
	melbourne.Title = "Federation Square"
	melbourne.Latitude = -37.8136
	melbourne.Longitude = 144.9631
	melbourne.IsPublic = true
	melbourne.ShareableLink = uuid.NewString()
	_, err = entries.Create(ctx, melbourne)
	require.NoError(t, err)

	// 50 km around central Sydney catches Bondi but not Melbourne (~710 km).
	got, err := entries.ListNear(ctx, -33.8688, 151.2093, 50)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bondi sunrise", got[0].Title)
}

func TestJournalRepo_ListNear_ExcludesPrivate(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	_, err := entries.Create(ctx, entryFixture(user.ID)) // private
	require.NoError(t, err)

	got, err := entries.ListNear(ctx, -33.8688, 151.2093, 50)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJournalRepo_GetByShareableLink(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	user := createTestUser(t, tx, "alice")

	input := entryFixture(user.ID)
	input.IsPublic = true
	input.ShareableLink = uuid.NewString()
	created, err := entries.Create(ctx, input)
	require.NoError(t, err)

	got, err := entries.GetByShareableLink(ctx, input.ShareableLink)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = entries.GetByShareableLink(ctx, "no-such-link")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournalRepo_Delete_ScopedToOwner(t *testing.T) {
	tx := newTestTx(t)
	entries := repo.NewJournalRepo(tx)
	ctx := context.Background()
	alice := createTestUser(t, tx, "alice")
	bob := createTestUser(t, tx, "bob")

	created, err := entries.Create(ctx, entryFixture(alice.ID))
	require.NoError(t, err)

	// Someone else's user id does not match — the row stays.
	err = entries.Delete(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, entries.Delete(ctx, alice.ID, created.ID))

	got, err := entries.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
