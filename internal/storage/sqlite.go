// Package storage provides SQLite-based persistence for the run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps the run history.
const DefaultPath = "~/.gridloop/runs.db"

const timeLayout = "2006-01-02 15:04:05"

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished engine run.
type Run struct {
	ID        string
	SimID     string
	Host      string
	Ticks     uint64
	Duration  time.Duration
	CreatedAt time.Time
}

// FPS returns the average frame rate of the run.
func (r Run) FPS() float64 {
	if r.Duration <= 0 || r.Ticks < 2 {
		return 0
	}
	// Duration spans the first to the last tick.
	return float64(r.Ticks-1) / r.Duration.Seconds()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			sim_id TEXT NOT NULL,
			host TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sim_id ON runs(sim_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Missing IDs and timestamps are filled in;
// the stored run is returned.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = xid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(
		"INSERT INTO runs (id, sim_id, host, ticks, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.SimID, r.Host, int64(r.Ticks), r.Duration.Milliseconds(), r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r, nil
}

// RunByID returns a single run.
func (s *Store) RunByID(id string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT id, sim_id, host, ticks, duration_ms, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns returns the latest runs, newest first. An empty simID matches
// every simulation.
func (s *Store) RecentRuns(simID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, sim_id, host, ticks, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR sim_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		simID, simID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the history of one simulation, or all of it for an
// empty simID.
func (s *Store) ClearRuns(simID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR sim_id = ?", simID, simID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var ticks, durationMS int64
	var createdAt any
	if err := sc.Scan(&r.ID, &r.SimID, &r.Host, &ticks, &durationMS, &createdAt); err != nil {
		return Run{}, err
	}
	r.Ticks = uint64(ticks)
	r.Duration = time.Duration(durationMS) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
