package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/dbx"
	"github.com/mindwell/journal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FetchAll(ctx context.Context) ([]*models.Entry, error) {
	query :=
		`SELECT id, user_id, example_value, created_at FROM entries
		 `

	return r.fetchMany(ctx, query)
}

func (r *PostgresRepository) FetchByID(ctx context.Context, id string) (*models.Entry, error) {
	query :=
		`SELECT id, user_id, example_value, created_at FROM entries
		 WHERE id = $1
		 `

	entry := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&entry.ID, &entry.UserID,
		&entry.ExampleValue, &entry.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) FetchByUserID(ctx context.Context, userID string) ([]*models.Entry, error) {
	query :=
		`SELECT id, user_id, example_value, created_at FROM entries
		 WHERE user_id = $1
		 `

	return r.fetchMany(ctx, query, userID)
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query :=
		`INSERT INTO entries (id, user_id, example_value)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	entry.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.ExampleValue).Scan(&entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.EntryPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}

	query :=
		`UPDATE entries SET example_value = $1
		 WHERE id = $2
		 `

	return r.exec(ctx, query, *patch.ExampleValue, id)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	query :=
		`DELETE FROM entries
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM entries
		 `

	return r.exec(ctx, query)
}

func (r *PostgresRepository) fetchMany(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Entry{}
	for rows.Next() {
		entry := &models.Entry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.ExampleValue, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
