// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists completed runs to a local SQLite database so
// earlier analyses can be listed and reopened. The analysis core never
// touches the archive; the CLI writes a run after the pipeline finishes.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kanishkapan/docintel/pkg/types"
)

const dbFile = "runs.db"

// now is replaced in tests for stable timestamps.
var now = time.Now

// Store manages the run archive SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one archived analysis run.
type Run struct {
	ID        int64
	Role      string
	Job       string
	Documents int
	Selected  int
	CreatedAt time.Time
}

// Entry is one archived ranked section.
type Entry struct {
	RunID          int64
	ImportanceRank int
	DocumentID     string
	Title          string
	Page           int
	Relevance      float64
	RefinedText    string
}

// Open opens or creates the archive database under cfg.Dir, creating the
// schema if needed.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			role TEXT NOT NULL,
			job TEXT NOT NULL,
			documents INTEGER NOT NULL,
			selected INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			importance_rank INTEGER NOT NULL,
			document_id TEXT NOT NULL,
			title TEXT NOT NULL,
			page INTEGER NOT NULL,
			relevance REAL NOT NULL,
			refined_text TEXT NOT NULL,
			PRIMARY KEY (run_id, importance_rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_run_id ON entries(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun archives one completed run and its selected sections, returning
// the new run's id.
func (s *Store) SaveRun(role, job string, documents int, result types.RankedResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (role, job, documents, selected, created_at) VALUES (?, ?, ?, ?, ?)`,
		role, job, documents, len(result.Entries), now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, e := range result.Entries {
		if _, err := tx.Exec(
			`INSERT INTO entries (run_id, importance_rank, document_id, title, page, relevance, refined_text)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, e.ImportanceRank, e.DocumentID, e.Title, e.Page, e.Relevance, e.RefinedText,
		); err != nil {
			return 0, fmt.Errorf("inserting entry %d: %w", e.ImportanceRank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns archived runs, newest first, capped at limit when
// positive.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, role, job, documents, selected, created_at FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.Role, &r.Job, &r.Documents, &r.Selected, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one archived run with its entries in rank order.
func (s *Store) GetRun(id int64) (Run, []Entry, error) {
	var (
		r       Run
		created string
	)
	err := s.db.QueryRow(
		`SELECT id, role, job, documents, selected, created_at FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Role, &r.Job, &r.Documents, &r.Selected, &created)
	if err == sql.ErrNoRows {
		return Run{}, nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("reading run %d: %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return Run{}, nil, fmt.Errorf("parsing run timestamp: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT run_id, importance_rank, document_id, title, page, relevance, refined_text
		 FROM entries WHERE run_id = ? ORDER BY importance_rank`, id,
	)
	if err != nil {
		return Run{}, nil, fmt.Errorf("reading entries for run %d: %w", id, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunID, &e.ImportanceRank, &e.DocumentID, &e.Title,
			&e.Page, &e.Relevance, &e.RefinedText); err != nil {
			return Run{}, nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return r, entries, rows.Err()
}
