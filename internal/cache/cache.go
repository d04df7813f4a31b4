// Package cache provides a durable, content-addressed cache of
// evaluated token programs. Keys are derived from the canonicalized
// program text, so identical programs hit the same entry regardless of
// where or when they were evaluated.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on expansions.created_at for pruning
const currentSchemaVersion = 1

// tokenSep joins token lists for storage. Tokens never contain control
// characters, so the unit separator is safe.
const tokenSep = "\x1f"

// Cache stores evaluated expansions in SQLite.
// Uses WAL mode for concurrent read access.
type Cache struct {
	db *sql.DB
}

// Entry is one cached expansion.
type Entry struct {
	Key       string
	Tokens    []string
	Steps     int
	CreatedAt time.Time
}

// Open creates or opens a cache database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get looks up a cached expansion. The second return value reports
// whether the key was present.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT tokens, steps, created_at FROM expansions WHERE key = ?`, key)

	var joined string
	var steps int
	var createdAt string
	if err := row.Scan(&joined, &steps, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: parsing created_at: %w", err)
	}

	var tokens []string
	if joined != "" {
		tokens = strings.Split(joined, tokenSep)
	}
	return &Entry{Key: key, Tokens: tokens, Steps: steps, CreatedAt: ts}, true, nil
}

// Put stores an expansion, replacing any existing entry for the key.
func (c *Cache) Put(ctx context.Context, key string, tokens []string, steps int) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO expansions (key, tokens, steps, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   tokens = excluded.tokens,
		   steps = excluded.steps,
		   created_at = excluded.created_at`,
		key, strings.Join(tokens, tokenSep), steps, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Prune deletes entries created before the cutoff and reports how many
// were removed.
func (c *Cache) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM expansions WHERE created_at < ?`,
		before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return res.RowsAffected()
}

// Len reports the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expansions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return runMigrations(db)
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if _, err := db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_expansions_created_at ON expansions(created_at)`); err != nil {
			return fmt.Errorf("migration to v1: %w", err)
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
