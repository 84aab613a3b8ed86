package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsummary/backend/internal/db"
	"github.com/vidsummary/backend/internal/models"
)

func newSQLiteStores(t *testing.T) (*SQLiteUserRepository, *SQLiteSummaryRepository) {
	t.Helper()
	ctx := context.Background()

	handle, err := db.OpenSQLite(ctx, db.SQLiteScheme+filepath.Join(t.TempDir(), "vidsummary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })

	require.NoError(t, db.Migrate(ctx, handle, db.DialectSQLite, "up"))

	return NewSQLiteUserRepository(handle), NewSQLiteSummaryRepository(handle)
}

func TestSQLiteUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users, _ := newSQLiteStores(t)

	user := models.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, users.Create(ctx, user))

	dup := user
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, users.Create(ctx, dup), ErrConflict)

	found, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user, found)

	_, err = users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSummaryRepository_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	users, summaries := newSQLiteStores(t)

	alice := models.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	bob := models.User{ID: uuid.NewString(), Username: "bob", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	base := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	older := models.Summary{ID: uuid.NewString(), UserID: alice.ID, VideoURL: "https://youtu.be/aaaaaaaaaaa", VideoTitle: "Older", CreatedAt: base}
	newer := models.Summary{ID: uuid.NewString(), UserID: alice.ID, VideoURL: "https://youtu.be/bbbbbbbbbbb", VideoTitle: "Newer", KeyPoints: "1. a", CreatedAt: base.Add(time.Minute)}
	other := models.Summary{ID: uuid.NewString(), UserID: bob.ID, VideoURL: "https://youtu.be/ccccccccccc", VideoTitle: "Bob's", CreatedAt: base.Add(time.Hour)}

	for _, s := range []models.Summary{older, newer, other} {
		require.NoError(t, summaries.Create(ctx, s))
	}

	// Same video twice is allowed.
	again := newer
	again.ID = uuid.NewString()
	again.CreatedAt = base.Add(2 * time.Minute)
	require.NoError(t, summaries.Create(ctx, again))

	list, err := summaries.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, again.ID, list[0].ID)
	assert.Equal(t, newer, list[1])
	assert.Equal(t, older.ID, list[2].ID)

	empty, err := summaries.ListByUser(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteSummaryRepository_UnknownUser(t *testing.T) {
	_, summaries := newSQLiteStores(t)

	err := summaries.Create(context.Background(), models.Summary{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		VideoURL:  "https://youtu.be/aaaaaaaaaaa",
		CreatedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
