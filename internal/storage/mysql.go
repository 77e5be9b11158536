package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS launches (" +
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
		"run_id CHAR(36) NOT NULL DEFAULT '', " +
		"binary_name VARCHAR(255) NOT NULL, " +
		"path TEXT NOT NULL, " +
		"args TEXT NOT NULL, " +
		"tool VARCHAR(32) NOT NULL DEFAULT '', " +
		"exit_code INT NOT NULL, " +
		"signal_no INT NOT NULL DEFAULT 0, " +
		"started_at DATETIME(6) NOT NULL, " +
		"duration_ns BIGINT NOT NULL, " +
		"suites MEDIUMTEXT NOT NULL, " +
		"log_error TEXT NOT NULL, " +
		"INDEX idx_launches_binary (binary_name, id))",
	"CREATE TABLE IF NOT EXISTS launch_failures (" +
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
		"launch_id BIGINT NOT NULL, " +
		"suite VARCHAR(512) NOT NULL, " +
		"test_name VARCHAR(255) NOT NULL, " +
		"level VARCHAR(32) NOT NULL, " +
		"file VARCHAR(1024) NOT NULL, " +
		"line INT NOT NULL, " +
		"message TEXT NOT NULL, " +
		"resolved BOOLEAN NOT NULL DEFAULT FALSE, " +
		"INDEX idx_failures_launch (launch_id), " +
		"FOREIGN KEY (launch_id) REFERENCES launches(id) ON DELETE CASCADE)",
}

// MySQLStorage keeps the launch history in a MySQL database. Load returns
// the latest launch of each binary.
type MySQLStorage struct {
	*sqlStore
}

// NewMySQLStorage opens the database named by dsn. No connection is made
// until the first operation.
func NewMySQLStorage(dsn string) (*MySQLStorage, error) {
	cfg, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create mysql connector: %w", err)
	}
	return &MySQLStorage{sqlStore: &sqlStore{
		db:     sql.OpenDB(connector),
		name:   "mysql",
		schema: mysqlSchema,
	}}, nil
}

func parseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}
	if cfg.DBName == "" {
		return nil, errors.New("invalid results DSN: no database name")
	}
	// started_at is scanned into time.Time
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	return cfg, nil
}
