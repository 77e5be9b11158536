package storage

import (
	"path/filepath"
	"strings"

	"tlaunch/internal/config"
	"tlaunch/internal/domain"
)

// Storage persists and loads launch results (e.g. for the failures viewer).
type Storage interface {
	// Save records one launch. Later launches of a binary supersede earlier ones.
	Save(result *domain.LaunchResult) error
	// Load returns the latest result of every binary.
	Load() (*domain.ResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.ResultsOutput) error
	// Close releases the backend's resources.
	Close() error
}

// sqlitePrefix selects the SQLite backend in a results DSN ("sqlite:results.db")
const sqlitePrefix = "sqlite:"

// Open returns the storage selected by the results DSN: SQLite for
// "sqlite:<path>", MySQL for any other DSN and the JSON file when unset.
func Open(cfg *config.Config) (Storage, error) {
	dsn := cfg.ResultsDSN
	switch {
	case dsn == "":
		return NewJSONStorage(cfg), nil
	case strings.HasPrefix(dsn, sqlitePrefix):
		path := strings.TrimPrefix(dsn, sqlitePrefix)
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectPath, path)
		}
		return NewSQLiteStorage(path)
	default:
		return NewMySQLStorage(dsn)
	}
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Close is a no-op; the file is rewritten on every save.
func (s *JSONStorage) Close() error {
	return nil
}
