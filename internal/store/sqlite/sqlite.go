// Package sqlite implements the durable store.KV on an embedded SQLite file.
//
// WHY SQLITE FOR A KEY-VALUE STORE?
// The app persists a handful of JSON payloads keyed by collection name —
// exactly one table of (key, payload). SQLite gives us that plus the two
// things a bare file would not: transactional multi-key writes (the sale
// recorder needs products and sales committed together) and crash safety
// via WAL. And modernc.org/sqlite is pure Go, so the binary stays a
// single cross-compilable artifact with no C toolchain involved.
//
// Use ":memory:" as the path for a throwaway database in tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements store.KV.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at path and prepares the schema.
//
// sql.Open only creates the pool; Ping forces a real connection so a
// bad path or permission problem surfaces here instead of on the first
// query. WAL mode lets reads proceed while a write is in flight, which
// matters because HTTP handlers hit the store concurrently.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New —
// it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the kv table. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it is safe on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

// Get returns the payload stored under key, or (nil, nil) if the key
// has never been written.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := db.conn.QueryRowContext(ctx,
		`SELECT payload FROM kv WHERE key = ?`, key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading key %q: %w", key, err)
	}
	return payload, nil
}

// Set stores payload under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key string, payload []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("sqlite: writing key %q: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs inside one transaction: all or nothing.
// This is the adapter-level guarantee the sale recorder builds on.
func (db *DB) SetMany(ctx context.Context, pairs map[string][]byte) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	for key, payload := range pairs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
			key, payload,
		)
		if err != nil {
			return fmt.Errorf("sqlite: writing key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing: %w", err)
	}
	return nil
}

// Clear removes every key — full data reset.
func (db *DB) Clear(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("sqlite: clearing kv table: %w", err)
	}
	return nil
}
