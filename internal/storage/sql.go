package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tlaunch/internal/domain"
	"tlaunch/internal/log"
)

// sqlStore keeps the launch history in a SQL database. The queries are
// shared by the MySQL and SQLite backends; only the schema differs.
type sqlStore struct {
	db     *sql.DB
	name   string
	schema []string

	// prepare runs once before the first connection
	prepare func() error

	mu       sync.Mutex
	migrated bool
}

// Close closes the database handle
func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) ensureSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.prepare != nil {
		if err := s.prepare(); err != nil {
			return err
		}
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s results database: %w", s.name, err)
	}
	for _, stmt := range s.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create %s results schema: %w", s.name, err)
		}
	}
	s.migrated = true
	log.WithComponent("storage").Debug("results schema ready", "backend", s.name)
	return nil
}

// Save inserts the launch and its failures
func (s *sqlStore) Save(result *domain.LaunchResult) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}

	args, err := json.Marshal(result.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	suites, err := json.Marshal(result.Suites)
	if err != nil {
		return fmt.Errorf("marshal suites: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO launches (run_id, binary_name, path, args, tool, exit_code, signal_no, started_at, duration_ns, suites, log_error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		result.RunID, result.Binary, result.Path, string(args), result.Tool, result.ExitCode, result.Signal,
		result.StartedAt.UTC(), int64(result.Duration), string(suites), result.LogError,
	)
	if err != nil {
		return fmt.Errorf("insert launch: %w", err)
	}
	launchID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("launch id: %w", err)
	}

	for i := range result.Failures {
		f := &result.Failures[i]
		res, err := tx.Exec(
			"INSERT INTO launch_failures (launch_id, suite, test_name, level, file, line, message, resolved) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			launchID, f.Suite, f.TestName, f.Level, f.File, f.Line, f.Message, f.Resolved,
		)
		if err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
		if f.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failure id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit launch: %w", err)
	}
	result.ID = launchID
	return nil
}

// Load returns the latest launch of every binary
func (s *sqlStore) Load() (*domain.ResultsOutput, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT l.id, l.run_id, l.binary_name, l.path, l.args, l.tool, l.exit_code, l.signal_no, l.started_at, l.duration_ns, l.suites, l.log_error " +
			"FROM launches l WHERE l.id = (SELECT MAX(id) FROM launches WHERE binary_name = l.binary_name) ORDER BY l.id",
	)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}
	defer rows.Close()

	output := &domain.ResultsOutput{}
	for rows.Next() {
		var l domain.LaunchResult
		var args, suites string
		var duration int64
		if err := rows.Scan(&l.ID, &l.RunID, &l.Binary, &l.Path, &args, &l.Tool, &l.ExitCode, &l.Signal, &l.StartedAt, &duration, &suites, &l.LogError); err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		l.Duration = time.Duration(duration)
		if err := json.Unmarshal([]byte(args), &l.Args); err != nil {
			return nil, fmt.Errorf("parse args of launch %d: %w", l.ID, err)
		}
		if err := json.Unmarshal([]byte(suites), &l.Suites); err != nil {
			return nil, fmt.Errorf("parse suites of launch %d: %w", l.ID, err)
		}
		output.Launches = append(output.Launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read launches: %w", err)
	}
	rows.Close()

	for i := range output.Launches {
		failures, err := s.loadFailures(&output.Launches[i])
		if err != nil {
			return nil, err
		}
		output.Launches[i].Failures = failures
	}

	output.Recompute(time.Now())
	return output, nil
}

func (s *sqlStore) loadFailures(launch *domain.LaunchResult) ([]domain.TestFailure, error) {
	rows, err := s.db.Query(
		"SELECT id, suite, test_name, level, file, line, message, resolved FROM launch_failures WHERE launch_id = ? ORDER BY id",
		launch.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var failures []domain.TestFailure
	for rows.Next() {
		f := domain.TestFailure{Binary: launch.Binary}
		if err := rows.Scan(&f.ID, &f.Suite, &f.TestName, &f.Level, &f.File, &f.Line, &f.Message, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}
	return failures, nil
}

// SaveOutput stores the resolved flags of the output's failures. Launches
// themselves are immutable once saved.
func (s *sqlStore) SaveOutput(output *domain.ResultsOutput) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, launch := range output.Launches {
		for _, f := range launch.Failures {
			if f.ID == 0 {
				continue
			}
			if _, err := tx.Exec("UPDATE launch_failures SET resolved = ? WHERE id = ?", f.Resolved, f.ID); err != nil {
				return fmt.Errorf("update failure %d: %w", f.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit resolved flags: %w", err)
	}
	return nil
}
