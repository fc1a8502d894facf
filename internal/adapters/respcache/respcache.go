// Package respcache persists model responses in a local SQLite file so that
// repeated runs replay identical answers without touching the provider
package respcache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	perr "biasprobe/internal/platform/errors"
	"biasprobe/internal/services/probe/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key           TEXT PRIMARY KEY,
	response      TEXT NOT NULL,
	model         TEXT NOT NULL,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	cached_at     TEXT NOT NULL
);
`

// Store is a single-writer response cache backed by SQLite. It implements
// domain.CachePort
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the cache file at path and ensures the schema.
// The parent directory is created when missing
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "create cache dir")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "open cache db")
	}
	// one writer at a time; avoids SQLITE_BUSY from connection churn
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "init cache schema")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error { return s.db.Close() }

// Get looks up a cached response by key. The second return is false on miss
func (s *Store) Get(ctx context.Context, key string) (domain.CacheEntry, bool, error) {
	var (
		e  domain.CacheEntry
		at string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT response, model, output_tokens, cached_at FROM responses WHERE key = ?`, key)
	if err := row.Scan(&e.Response, &e.Model, &e.OutputTokens, &at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, perr.Wrapf(err, perr.ErrorCodeStorage, "cache get")
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return domain.CacheEntry{}, false, perr.Wrapf(err, perr.ErrorCodeStorage, "cache timestamp parse")
	}
	e.CachedAt = t
	return e, true, nil
}

// Set upserts a response under key
func (s *Store) Set(ctx context.Context, key string, e domain.CacheEntry) error {
	at := e.CachedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (key, response, model, output_tokens, cached_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   response = excluded.response,
		   model = excluded.model,
		   output_tokens = excluded.output_tokens,
		   cached_at = excluded.cached_at`,
		key, e.Response, e.Model, e.OutputTokens, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "cache set")
	}
	return nil
}

// Len reports how many responses are cached
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeStorage, "cache count")
	}
	return n, nil
}

var _ domain.CachePort = (*Store)(nil)
