package mindfulness

import (
	"context"

	"github.com/mindwell/journal/internal/server/models"
)

type Repository interface {
	FetchAll(ctx context.Context) ([]*models.MindfulnessEntry, error)
	FetchByID(ctx context.Context, id string) (*models.MindfulnessEntry, error)
	FetchByUserID(ctx context.Context, userID string) ([]*models.MindfulnessEntry, error)
	Insert(ctx context.Context, entry *models.MindfulnessEntry) (*models.MindfulnessEntry, error)
	UpdateByID(ctx context.Context, id string, patch models.MindfulnessEntryPatch) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
