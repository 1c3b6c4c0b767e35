// Package repomanager selects and wires the storage backend: PostgreSQL
// (pgx + goose migrations) or an in-memory store.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Sessions() sessions.Repository
	Close() error
}

// New builds the manager for cfg.StoreBackend and applies migrations.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		m, err = OpenPostgres(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
	case config.StoreBackendMemory:
		m = NewMemoryRepositoryManager()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}
