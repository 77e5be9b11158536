package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	`CREATE TABLE IF NOT EXISTS launches (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id      TEXT NOT NULL DEFAULT '',
  binary_name TEXT NOT NULL,
  path        TEXT NOT NULL,
  args        TEXT NOT NULL,
  tool        TEXT NOT NULL DEFAULT '',
  exit_code   INTEGER NOT NULL,
  signal_no   INTEGER NOT NULL DEFAULT 0,
  started_at  DATETIME NOT NULL,
  duration_ns INTEGER NOT NULL,
  suites      TEXT NOT NULL,
  log_error   TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS launches_binary_idx ON launches(binary_name, id)`,
	`CREATE TABLE IF NOT EXISTS launch_failures (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  launch_id INTEGER NOT NULL REFERENCES launches(id) ON DELETE CASCADE,
  suite     TEXT NOT NULL,
  test_name TEXT NOT NULL,
  level     TEXT NOT NULL,
  file      TEXT NOT NULL,
  line      INTEGER NOT NULL,
  message   TEXT NOT NULL,
  resolved  BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE INDEX IF NOT EXISTS launch_failures_launch_idx ON launch_failures(launch_id)`,
}

// SQLiteStorage keeps the launch history in a local SQLite file
type SQLiteStorage struct {
	*sqlStore
}

// NewSQLiteStorage opens the database file at path. The file and its
// directory are created on first use.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	return &SQLiteStorage{sqlStore: &sqlStore{
		db:     db,
		name:   "sqlite",
		schema: sqliteSchema,
		prepare: func() error {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create sqlite directory: %w", err)
			}
			return nil
		},
	}}, nil
}
