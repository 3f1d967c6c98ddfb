package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mindwell/journal/internal/server/migrations"
	"github.com/mindwell/journal/internal/server/repositories/entries"
	"github.com/mindwell/journal/internal/server/repositories/mindfulness"
	"github.com/mindwell/journal/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db          *sql.DB
	users       users.Repository
	entries     entries.Repository
	mindfulness mindfulness.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *PostgresRepositoryManager) Mindfulness() mindfulness.Repository {
	return m.mindfulness
}

// RunMigrations applies the embedded schema migrations. Safe to call on
// every startup: each one is create-if-absent.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:          db,
		users:       users.NewPostgresRepository(db),
		entries:     entries.NewPostgresRepository(db),
		mindfulness: mindfulness.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
