package repositories

import (
	"context"

	"github.com/vidsummary/backend/internal/models"
)

// SummaryRepository exposes data access for stored video summaries.
type SummaryRepository interface {
	Create(ctx context.Context, summary models.Summary) error
	ListByUser(ctx context.Context, userID string) ([]models.Summary, error)
}
