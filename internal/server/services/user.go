// Package services contains the server-side business logic. Each service
// wraps a repository with domain-shaped accessors and uniform existence
// semantics: empty reads become key-carrying not-found errors here, and
// every mutation re-fetches so callers always see the authoritative record.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/auth"
	"github.com/mindwell/journal/internal/server/config"
	"github.com/mindwell/journal/internal/server/models"
	"github.com/mindwell/journal/internal/server/repositories/users"
)

// UserService provides user CRUD plus the authentication operations:
// credential verification and bearer-token issuance.
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.FetchAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFoundError(id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FetchByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFoundError(email)
		}
		return nil, err
	}
	return user, nil
}

// Create hashes the plaintext password, inserts the record, and re-fetches
// by the generated id to return the authoritative row (store-assigned
// created_at included).
func (s *UserService) Create(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	digest, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		SaltedPassword: digest,
	}

	inserted, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.refetchByID(ctx, inserted.ID)
}

// UpdateByID verifies existence before writing, so a miss is reported
// before any write attempt, then applies the patch and re-fetches.
func (s *UserService) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	patch, err := s.hashPatchPassword(patch)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *UserService) UpdateByEmail(ctx context.Context, email string, patch models.UserPatch) (*models.User, error) {
	if _, err := s.GetByEmail(ctx, email); err != nil {
		return nil, err
	}

	patch, err := s.hashPatchPassword(patch)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateByEmail(ctx, email, patch); err != nil {
		return nil, err
	}

	// the patch may have moved the record to a new email
	if patch.Email != nil {
		email = *patch.Email
	}
	return s.GetByEmail(ctx, email)
}

func (s *UserService) DeleteByID(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *UserService) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	return s.repo.DeleteByEmail(ctx, email)
}

func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// Authenticate verifies email/password credentials. A missing user and a
// wrong password are indistinguishable to the caller: both normalize to
// ErrUnauthorized so the API never confirms whether an email exists.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FetchByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	ok, err := auth.VerifyPassword(password, user.SaltedPassword)
	if err != nil {
		return nil, common.ErrInternal
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// IssueToken mints a bearer token bound to the user's email. Downstream
// authorization re-resolves the user by this same key.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
}

func (s *UserService) hashPatchPassword(patch models.UserPatch) (models.UserPatch, error) {
	if patch.Password == nil {
		return patch, nil
	}

	digest, err := auth.HashPassword(*patch.Password, s.bcryptCost)
	if err != nil {
		return patch, err
	}

	patch.Password = nil
	patch.SaltedPassword = &digest
	return patch, nil
}

// refetchByID reads back a freshly inserted row. A concurrent delete can
// race the insert, so a miss is retried once before giving up.
func (s *UserService) refetchByID(ctx context.Context, id string) (*models.User, error) {
	for attempt := 0; attempt < 2; attempt++ {
		user, err := s.repo.FetchByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}
	return nil, common.ErrInternal
}
