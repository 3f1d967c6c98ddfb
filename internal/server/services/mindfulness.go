package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/models"
	"github.com/mindwell/journal/internal/server/repositories/mindfulness"
)

// MindfulnessService provides CRUD over the three-question daily
// reflections.
type MindfulnessService struct {
	repo mindfulness.Repository
}

func NewMindfulnessService(repo mindfulness.Repository) *MindfulnessService {
	return &MindfulnessService{repo: repo}
}

func (s *MindfulnessService) GetAll(ctx context.Context) ([]*models.MindfulnessEntry, error) {
	return s.repo.FetchAll(ctx)
}

func (s *MindfulnessService) GetByID(ctx context.Context, id string) (*models.MindfulnessEntry, error) {
	entry, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFoundError(id)
		}
		return nil, err
	}
	return entry, nil
}

func (s *MindfulnessService) GetForUser(ctx context.Context, userID string) ([]*models.MindfulnessEntry, error) {
	return s.repo.FetchByUserID(ctx, userID)
}

func (s *MindfulnessService) Create(ctx context.Context, userID, grateful, serviceSelf, serviceOthers string) (*models.MindfulnessEntry, error) {
	entry := &models.MindfulnessEntry{
		UserID:                userID,
		QuestionGrateful:      grateful,
		QuestionServiceSelf:   serviceSelf,
		QuestionServiceOthers: serviceOthers,
	}

	inserted, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating mindfulness entry: %w", err)
	}

	return s.refetchByID(ctx, inserted.ID)
}

func (s *MindfulnessService) UpdateByID(ctx context.Context, id string, patch models.MindfulnessEntryPatch) (*models.MindfulnessEntry, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *MindfulnessService) DeleteByID(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *MindfulnessService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

func (s *MindfulnessService) refetchByID(ctx context.Context, id string) (*models.MindfulnessEntry, error) {
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
