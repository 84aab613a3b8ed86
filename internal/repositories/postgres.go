package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidsummary/backend/internal/db"
	"github.com/vidsummary/backend/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresUserRepository provides PostgreSQL-backed persistence for users.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO users (id, username, password_hash, created_at)
        VALUES ($1, $2, $3, $4)
    `, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByUsername fetches a user by their unique username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, username, password_hash, created_at
        FROM users
        WHERE username = $1
    `, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by username: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

// PostgresSummaryRepository provides PostgreSQL-backed persistence for video summaries.
type PostgresSummaryRepository struct {
	pool db.Pool
}

// NewPostgresSummaryRepository constructs a summary repository backed by PostgreSQL.
func NewPostgresSummaryRepository(pool db.Pool) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{pool: pool}
}

// Create inserts a summary row. Rows are never updated afterwards.
func (r *PostgresSummaryRepository) Create(ctx context.Context, s models.Summary) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO video_summaries (id, user_id, video_url, video_title, thumbnail_url, key_points, summary, ai_analysis, video_purpose, conclusions, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, s.ID, s.UserID, s.VideoURL, s.VideoTitle, s.ThumbnailURL, s.KeyPoints, s.Summary, s.AIAnalysis, s.VideoPurpose, s.Conclusions, s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrConflict
			case pgForeignKeyViolation:
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert video summary: %w", err)
	}

	return nil
}

// ListByUser returns the user's summaries, newest first.
func (r *PostgresSummaryRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, user_id, video_url, video_title, thumbnail_url, key_points, summary, ai_analysis, video_purpose, conclusions, created_at
        FROM video_summaries
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query video summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.Summary{}
	for rows.Next() {
		var s models.Summary
		if err := rows.Scan(&s.ID, &s.UserID, &s.VideoURL, &s.VideoTitle, &s.ThumbnailURL, &s.KeyPoints, &s.Summary, &s.AIAnalysis, &s.VideoPurpose, &s.Conclusions, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan video summary: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video summaries: %w", err)
	}

	return summaries, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
var _ SummaryRepository = (*PostgresSummaryRepository)(nil)
