package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/models"
	"github.com/mindwell/journal/internal/server/repositories/entries"
)

// EntryService provides CRUD over the plain journal entries.
type EntryService struct {
	repo entries.Repository
}

func NewEntryService(repo entries.Repository) *EntryService {
	return &EntryService{repo: repo}
}

func (s *EntryService) GetAll(ctx context.Context) ([]*models.Entry, error) {
	return s.repo.FetchAll(ctx)
}

func (s *EntryService) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	entry, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFoundError(id)
		}
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) GetForUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.repo.FetchByUserID(ctx, userID)
}

func (s *EntryService) Create(ctx context.Context, userID, exampleValue string) (*models.Entry, error) {
	entry := &models.Entry{
		UserID:       userID,
		ExampleValue: exampleValue,
	}

	inserted, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return s.refetchByID(ctx, inserted.ID)
}

func (s *EntryService) UpdateByID(ctx context.Context, id string, patch models.EntryPatch) (*models.Entry, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *EntryService) DeleteByID(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *EntryService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

func (s *EntryService) refetchByID(ctx context.Context, id string) (*models.Entry, error) {
	for attempt := 0; attempt < 2; attempt++ {
		entry, err := s.repo.FetchByID(ctx, id)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}
	return nil, common.ErrInternal
}
