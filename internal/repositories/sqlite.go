package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vidsummary/backend/internal/models"
)

// SQLiteUserRepository persists users in an embedded SQLite database for local and offline runs.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository constructs a user repository backed by SQLite.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create persists a new user record.
func (r *SQLiteUserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, username, password_hash, created_at)
        VALUES (?, ?, ?, ?)
    `, user.ID, user.Username, user.PasswordHash, user.CreatedAt.UTC().UnixNano())
	if err != nil {
		if errors.Is(classifySQLite(err), ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername fetches a user by their unique username.
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, created_at
        FROM users
        WHERE username = ?
    `, username)

	var (
		user    models.User
		created int64
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by username: %w", err)
	}
	user.CreatedAt = time.Unix(0, created).UTC()
	return user, nil
}

// SQLiteSummaryRepository persists video summaries in SQLite.
type SQLiteSummaryRepository struct {
	db *sql.DB
}

// NewSQLiteSummaryRepository constructs a summary repository backed by SQLite.
func NewSQLiteSummaryRepository(db *sql.DB) *SQLiteSummaryRepository {
	return &SQLiteSummaryRepository{db: db}
}

// Create inserts a summary row.
func (r *SQLiteSummaryRepository) Create(ctx context.Context, s models.Summary) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO video_summaries (id, user_id, video_url, video_title, thumbnail_url, key_points, summary, ai_analysis, video_purpose, conclusions, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, s.ID, s.UserID, s.VideoURL, s.VideoTitle, s.ThumbnailURL, s.KeyPoints, s.Summary, s.AIAnalysis, s.VideoPurpose, s.Conclusions, s.CreatedAt.UTC().UnixNano())
	if err != nil {
		if classified := classifySQLite(err); classified != nil {
			return classified
		}
		return fmt.Errorf("insert video summary: %w", err)
	}
	return nil
}

// ListByUser returns the user's summaries, newest first.
func (r *SQLiteSummaryRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, video_url, video_title, thumbnail_url, key_points, summary, ai_analysis, video_purpose, conclusions, created_at
        FROM video_summaries
        WHERE user_id = ?
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query video summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.Summary{}
	for rows.Next() {
		var (
			s       models.Summary
			created int64
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.VideoURL, &s.VideoTitle, &s.ThumbnailURL, &s.KeyPoints, &s.Summary, &s.AIAnalysis, &s.VideoPurpose, &s.Conclusions, &created); err != nil {
			return nil, fmt.Errorf("scan video summary: %w", err)
		}
		s.CreatedAt = time.Unix(0, created).UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video summaries: %w", err)
	}
	return summaries, nil
}

// classifySQLite maps constraint failures onto the repository sentinels, or returns nil.
func classifySQLite(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrConflict
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrNotFound
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary code only when extended result codes are off.
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return ErrConflict
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return ErrNotFound
		}
	}
	return nil
}

var _ UserRepository = (*SQLiteUserRepository)(nil)
var _ SummaryRepository = (*SQLiteSummaryRepository)(nil)
