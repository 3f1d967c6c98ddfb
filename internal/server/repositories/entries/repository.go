package entries

import (
	"context"

	"github.com/mindwell/journal/internal/server/models"
)

type Repository interface {
	FetchAll(ctx context.Context) ([]*models.Entry, error)
	FetchByID(ctx context.Context, id string) (*models.Entry, error)
	FetchByUserID(ctx context.Context, userID string) ([]*models.Entry, error)
	Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateByID(ctx context.Context, id string, patch models.EntryPatch) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
