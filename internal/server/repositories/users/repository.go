package users

import (
	"context"

	"github.com/mindwell/journal/internal/server/models"
)

type Repository interface {
	FetchAll(ctx context.Context) ([]*models.User, error)
	FetchByID(ctx context.Context, id string) (*models.User, error)
	FetchByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	UpdateByID(ctx context.Context, id string, patch models.UserPatch) (int64, error)
	UpdateByEmail(ctx context.Context, email string, patch models.UserPatch) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
