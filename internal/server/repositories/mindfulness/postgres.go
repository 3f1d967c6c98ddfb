package mindfulness

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (r *PostgresRepository) FetchAll(ctx context.Context) ([]*models.MindfulnessEntry, error) {
	query :=
		`SELECT id, user_id, question_grateful, question_service_self, question_service_others, created_at
		 FROM mindfulness_entries
		 `

	return r.fetchMany(ctx, query)
}

func (r *PostgresRepository) FetchByID(ctx context.Context, id string) (*models.MindfulnessEntry, error) {
	query :=
		`SELECT id, user_id, question_grateful, question_service_self, question_service_others, created_at
		 FROM mindfulness_entries
		 WHERE id = $1
		 `

	entry := &models.MindfulnessEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&entry.ID, &entry.UserID,
		&entry.QuestionGrateful, &entry.QuestionServiceSelf, &entry.QuestionServiceOthers, &entry.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) FetchByUserID(ctx context.Context, userID string) ([]*models.MindfulnessEntry, error) {
	query :=
		`SELECT id, user_id, question_grateful, question_service_self, question_service_others, created_at
		 FROM mindfulness_entries
		 WHERE user_id = $1
		 `

	return r.fetchMany(ctx, query, userID)
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.MindfulnessEntry) (*models.MindfulnessEntry, error) {
	query :=
		`INSERT INTO mindfulness_entries (id, user_id, question_grateful, question_service_self, question_service_others)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	entry.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.QuestionGrateful,
		entry.QuestionServiceSelf, entry.QuestionServiceOthers).Scan(&entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.MindfulnessEntryPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.QuestionGrateful != nil {
		add("question_grateful", *patch.QuestionGrateful)
	}
	if patch.QuestionServiceSelf != nil {
		add("question_service_self", *patch.QuestionServiceSelf)
	}
	if patch.QuestionServiceOthers != nil {
		add("question_service_others", *patch.QuestionServiceOthers)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE mindfulness_entries SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	return r.exec(ctx, query, args...)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	query :=
		`DELETE FROM mindfulness_entries
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM mindfulness_entries
		 `

	return r.exec(ctx, query)
}

func (r *PostgresRepository) fetchMany(ctx context.Context, query string, args ...any) ([]*models.MindfulnessEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.MindfulnessEntry{}
	for rows.Next() {
		entry := &models.MindfulnessEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.QuestionGrateful,
			&entry.QuestionServiceSelf, &entry.QuestionServiceOthers, &entry.CreatedAt); err != nil {
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
