package repository

import (
	"context"
	"log/slog"

	"github.com/portfolio/contact-api/internal/config"
)

// OpenContactRepository connects to the store selected by cfg and ensures the
// contacts table exists. PostgreSQL is used when DatabaseURL is set, SQLite
// otherwise. The returned func releases the connection.
func OpenContactRepository(ctx context.Context, cfg config.StoreConfig) (ContactRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := NewPgContactRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("contact store ready", "driver", "postgres")
		return repo, pool.Close, nil
	}

	db, err := OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	repo := NewSqliteContactRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	slog.Info("contact store ready", "driver", "sqlite3", "path", cfg.SQLitePath)
	return repo, func() { _ = repo.Close() }, nil
}
