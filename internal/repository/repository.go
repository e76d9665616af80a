package repository

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	defaultListLimit = 20
	maxListLimit     = 1000
)

// NewPool opens a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping postgres")
	}
	return pool, nil
}

// OpenSQLite opens the SQLite file at path, creating it if needed.
// The handle allows a single open connection; SQLite serialises writers anyway.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite3 database")
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to sqlite3 database %q", path)
	}
	return db, nil
}

// sqliteDSN builds a file: URI for path. The path is percent-encoded so "?",
// "#" and "%" in a file name are not read as URI syntax; SQLite decodes it.
func sqliteDSN(path string) string {
	escaped := strings.ReplaceAll(url.PathEscape(path), "%2F", "/")
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", escaped)
}

// listBounds clamps pagination to sane values.
func listBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
