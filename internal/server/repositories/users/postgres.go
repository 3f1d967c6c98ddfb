package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

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

func (r *PostgresRepository) FetchAll(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, salted_password, is_admin, created_at FROM users
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName,
			&user.Email, &user.SaltedPassword, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FetchByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, salted_password, is_admin, created_at FROM users
		 WHERE id = $1
		 `

	return r.fetchOne(ctx, query, id)
}

func (r *PostgresRepository) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, salted_password, is_admin, created_at FROM users
		 WHERE email = $1
		 `

	return r.fetchOne(ctx, query, email)
}

// Insert mints the UUID locally so uniqueness does not depend on a pre-read,
// and lets the store assign created_at. Any id or createdDate present on the
// incoming record is overwritten.
func (r *PostgresRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, first_name, last_name, email, salted_password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	user.ID = uuid.NewString()
	user.IsAdmin = false

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.SaltedPassword).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email", common.ErrDuplicate)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (int64, error) {
	return r.updateByKey(ctx, "id", id, patch)
}

func (r *PostgresRepository) UpdateByEmail(ctx context.Context, email string, patch models.UserPatch) (int64, error) {
	return r.updateByKey(ctx, "email", email, patch)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	query :=
		`DELETE FROM users
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	query :=
		`DELETE FROM users
		 WHERE email = $1
		 `

	return r.exec(ctx, query, email)
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM users
		 `

	return r.exec(ctx, query)
}

func (r *PostgresRepository) fetchOne(ctx context.Context, query string, key string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&user.ID, &user.FirstName,
		&user.LastName, &user.Email, &user.SaltedPassword, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// updateByKey applies only the non-nil patch fields in a single statement.
// Immutable columns (id, created_at) have no patch slot, so they cannot be
// touched here.
func (r *PostgresRepository) updateByKey(ctx context.Context, column, key string, patch models.UserPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, common.ErrEmptyPatch
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.SaltedPassword != nil {
		add("salted_password", *patch.SaltedPassword)
	}
	if patch.IsAdmin != nil {
		add("is_admin", *patch.IsAdmin)
	}

	args = append(args, key)
	query := fmt.Sprintf("UPDATE users SET %s WHERE %s = $%d",
		strings.Join(sets, ", "), column, len(args))

	affected, err := r.exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: email", common.ErrDuplicate)
		}
		return 0, err
	}

	return affected, nil
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
