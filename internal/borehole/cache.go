package borehole

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores parsed records keyed by file content, not by path, so an edited
// file can never be served from a stale entry.
type Cache struct {
	db *sql.DB
}

// Key returns the cache key for raw file content under the current parser
func Key(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]) + ":" + ParserVersion
}

// OpenCache opens or creates a SQLite cache at dbPath
func OpenCache(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS records (
		key            TEXT PRIMARY KEY,
		source_path    TEXT NOT NULL,
		parser_version TEXT NOT NULL,
		payload        TEXT NOT NULL,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_source ON records(source_path);
	`)
	return err
}

// Get returns the cached record for key. The bool is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*Record, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM records WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, false, fmt.Errorf("decode cached record: %w", err)
	}
	return &rec, true, nil
}

// Put stores rec under key, replacing any existing entry
func (c *Cache) Put(ctx context.Context, key, sourcePath string, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO records (key, source_path, parser_version, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key, sourcePath, ParserVersion, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Invalidate removes the entry for key. Removing a missing key is not an error.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	return err
}

// InvalidatePath removes every entry that was parsed from sourcePath
func (c *Cache) InvalidatePath(ctx context.Context, sourcePath string) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM records WHERE source_path = ?`, sourcePath)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Purge removes all entries and returns how many were deleted
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of cached records
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
