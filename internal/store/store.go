// Package store provides SQLite-based persistence for solver runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned by Lookup when no run matches.
var ErrNotFound = errors.New("store: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Key identifies a query: the same grid, endpoints and run bounds always
// produce the same answer, whatever frontier was used.
type Key struct {
	GridDigest string
	Start      string
	Goal       string
	MinRun     int
	MaxRun     int
}

// Run represents a single recorded query.
type Run struct {
	ID        int64
	Key       Key
	Width     int
	Height    int
	Frontier  string
	Reachable bool
	Cost      int64
	Settled   int
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("store: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}
	// In-memory databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			grid_digest TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			start TEXT NOT NULL,
			goal TEXT NOT NULL,
			min_run INTEGER NOT NULL,
			max_run INTEGER NOT NULL,
			frontier TEXT NOT NULL,
			reachable INTEGER NOT NULL,
			cost INTEGER NOT NULL DEFAULT 0,
			settled INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_key ON runs(grid_digest, start, goal, min_run, max_run);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished query.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (grid_digest, width, height, start, goal, min_run, max_run,
		                   frontier, reachable, cost, settled, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Key.GridDigest, r.Width, r.Height, r.Key.Start, r.Key.Goal, r.Key.MinRun, r.Key.MaxRun,
		r.Frontier, r.Reachable, r.Cost, r.Settled, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("store: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectRun = `SELECT id, grid_digest, width, height, start, goal, min_run, max_run,
	       frontier, reachable, cost, settled, duration_ms, created_at
	FROM runs`

// Lookup returns the most recent run for k, or ErrNotFound.
func (s *Store) Lookup(k Key) (Run, error) {
	row := s.db.QueryRow(selectRun+`
		WHERE grid_digest = ? AND start = ? AND goal = ? AND min_run = ? AND max_run = ?
		ORDER BY id DESC
		LIMIT 1`,
		k.GridDigest, k.Start, k.Goal, k.MinRun, k.MaxRun,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("store: cannot query run: %w", err)
	}

	return r, nil
}

// Recent retrieves the last N runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(selectRun+`
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("store: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}

	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r          Run
		durationMs int64
		createdAt  any
	)
	err := sc.Scan(&r.ID, &r.Key.GridDigest, &r.Width, &r.Height, &r.Key.Start, &r.Key.Goal,
		&r.Key.MinRun, &r.Key.MaxRun, &r.Frontier, &r.Reachable, &r.Cost, &r.Settled,
		&durationMs, &createdAt)
	if err != nil {
		return Run{}, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}

	return r, nil
}
