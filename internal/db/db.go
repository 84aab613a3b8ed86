package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// SQLiteScheme prefixes database URLs that select the embedded SQLite backend.
const SQLiteScheme = "sqlite://"

// Pool abstracts the pgx connection pool to make testing easier.
type Pool interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

// Connect initialises a PostgreSQL connection pool using the provided database URL.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// IsSQLite reports whether the database URL targets the embedded SQLite backend.
func IsSQLite(databaseURL string) bool {
	return strings.HasPrefix(strings.TrimSpace(databaseURL), SQLiteScheme)
}

// OpenSQLite opens a SQLite database at the path encoded in a sqlite:// URL with foreign keys enforced.
func OpenSQLite(ctx context.Context, databaseURL string) (*sql.DB, error) {
	path := strings.TrimPrefix(strings.TrimSpace(databaseURL), SQLiteScheme)
	if path == "" {
		return nil, fmt.Errorf("sqlite url %q has no path", databaseURL)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serialises writers; one connection keeps pragmas and avoids SQLITE_BUSY.
	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return handle, nil
}
