package bank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2" // driver: duckdb
	_ "modernc.org/sqlite"             // driver: sqlite
)

// StorageKey is the key the bank blob is stored under in SQL backends.
const StorageKey = "smartQuestionsBank"

const kvSchema = `
CREATE TABLE IF NOT EXISTS quizgen_kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

const (
	kvSelect = `SELECT value FROM quizgen_kv WHERE key = ?`
	kvUpsert = `INSERT INTO quizgen_kv (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`
)

// SQLBlob stores the bank blob as one row of a key-value table.
type SQLBlob struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*SQLBlob, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	dsn := "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)"
	return openSQL(ctx, "sqlite", dsn)
}

// OpenDuckDB opens (creating if needed) a DuckDB database file.
func OpenDuckDB(ctx context.Context, path string) (*SQLBlob, error) {
	if path == "" {
		return nil, errors.New("duckdb: path is required")
	}
	return openSQL(ctx, "duckdb", path)
}

func openSQL(ctx context.Context, driver, dsn string) (*SQLBlob, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	blob, err := NewSQLBlob(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s schema: %w", driver, err)
	}
	return blob, nil
}

// NewSQLBlob applies the key-value schema to db and returns a blob bound to StorageKey.
func NewSQLBlob(ctx context.Context, db *sql.DB) (*SQLBlob, error) {
	if db == nil {
		return nil, errors.New("bank: db is nil")
	}
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		return nil, err
	}
	return &SQLBlob{db: db, key: StorageKey}, nil
}

func (b *SQLBlob) Load(ctx context.Context) ([]byte, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, kvSelect, b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (b *SQLBlob) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, kvUpsert, b.key, string(data))
	return err
}

// Close releases the underlying database.
func (b *SQLBlob) Close() error {
	return b.db.Close()
}
