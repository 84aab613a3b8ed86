//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vidsummary/backend/internal/db"
	"github.com/vidsummary/backend/internal/models"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	if err := db.Migrate(ctx, sqlDB, db.DialectPostgres, "up"); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		_ = sqlDB.Close()
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	_ = sqlDB.Close()
	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)

	user := models.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		PasswordHash: "secret-hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	dup := models.User{
		ID:           uuid.NewString(),
		Username:     user.Username,
		PasswordHash: "another-hash",
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when creating duplicate username, got %v", err)
	}

	fetched, err := repo.FindByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}

	if fetched.ID != user.ID || fetched.Username != user.Username || fetched.PasswordHash != user.PasswordHash {
		t.Fatalf("unexpected user fetched: %+v", fetched)
	}

	if _, err := repo.FindByUsername(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown username, got %v", err)
	}
}

func TestPostgresSummaryRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	summaryRepo := NewPostgresSummaryRepository(testPool)

	viewer := createTestUser(t, userRepo, "viewer")
	stranger := createTestUser(t, userRepo, "stranger")

	base := time.Now().UTC().Add(-30 * time.Minute)
	first := models.Summary{
		ID:         uuid.NewString(),
		UserID:     viewer.ID,
		VideoURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoTitle: "First",
		CreatedAt:  base,
	}
	second := models.Summary{
		ID:         uuid.NewString(),
		UserID:     viewer.ID,
		VideoURL:   "https://youtu.be/dQw4w9WgXcQ",
		VideoTitle: "Second",
		KeyPoints:  "1. point",
		CreatedAt:  base.Add(5 * time.Minute),
	}
	strangers := models.Summary{
		ID:         uuid.NewString(),
		UserID:     stranger.ID,
		VideoURL:   "https://youtu.be/aaaaaaaaaaa",
		VideoTitle: "Stranger",
		CreatedAt:  base.Add(10 * time.Minute),
	}

	for _, s := range []models.Summary{first, second, strangers} {
		if err := summaryRepo.Create(ctx, s); err != nil {
			t.Fatalf("create summary %s: %v", s.ID, err)
		}
	}

	list, err := summaryRepo.ListByUser(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 summaries for viewer, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
	if list[0].KeyPoints != "1. point" {
		t.Fatalf("expected key points to round trip, got %q", list[0].KeyPoints)
	}

	orphan := models.Summary{ID: uuid.NewString(), UserID: uuid.NewString(), VideoURL: "https://youtu.be/aaaaaaaaaaa", CreatedAt: time.Now().UTC()}
	if err := summaryRepo.Create(ctx, orphan); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown owner, got %v", err)
	}
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE video_summaries, users CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "password-hash",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
