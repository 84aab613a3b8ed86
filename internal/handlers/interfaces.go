package handlers

import (
	"context"

	"github.com/vidsummary/backend/internal/auth"
	"github.com/vidsummary/backend/internal/models"
	"github.com/vidsummary/backend/internal/summarize"
)

// UserStore captures the persistence operations required by the auth handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(userID, username string) (models.SessionToken, error)
	Verify(token string) (auth.Principal, error)
}

// SummaryStore lists stored summaries for a user.
type SummaryStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Summary, error)
}

// Summarizer runs one orchestration for an authenticated user.
type Summarizer interface {
	Summarize(ctx context.Context, userID, videoURL string) (summarize.Result, error)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error
