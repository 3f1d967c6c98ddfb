// Package repomanager owns the shared database handle and hands out
// per-entity repositories bound to it.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mindwell/journal/internal/server/repositories/entries"
	"github.com/mindwell/journal/internal/server/repositories/mindfulness"
	"github.com/mindwell/journal/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Entries() entries.Repository
	Mindfulness() mindfulness.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
