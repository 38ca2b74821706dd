// Package store handles SQLite persistence of recorded runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/sysyrt/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width in UTC so stored timestamps order as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			program TEXT NOT NULL,
			args TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			wall_us INTEGER NOT NULL,
			total_us INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_timers (
			run_id INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			hours INTEGER NOT NULL,
			minutes INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			micros INTEGER NOT NULL,
			PRIMARY KEY (run_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_program ON runs(program);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its reported intervals.
func (s *Store) InsertRun(ctx context.Context, run model.Run, timers []model.TimerRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (program, args, started_at, ended_at, exit_code, wall_us, total_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Program,
		strings.Join(run.Args, "\x00"),
		formatTime(run.StartedAt),
		formatTime(run.EndedAt),
		run.ExitCode,
		run.WallUs,
		run.TotalUs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(timers) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_timers (run_id, idx, hours, minutes, seconds, micros)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, tr := range timers {
			if _, err = stmt.ExecContext(ctx, id, tr.Index, tr.Hours, tr.Minutes, tr.Seconds, tr.Micros); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns runs filtered by the history config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Program != "" {
		clauses = append(clauses, "program = ?")
		args = append(args, cfg.Program)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := fmt.Sprintf(`SELECT id, program, args, started_at, ended_at, exit_code, wall_us, total_us
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var args, startedAt, endedAt string
		if err := rows.Scan(&run.ID, &run.Program, &args, &startedAt, &endedAt, &run.ExitCode, &run.WallUs, &run.TotalUs); err != nil {
			return nil, err
		}
		if args != "" {
			run.Args = strings.Split(args, "\x00")
		}
		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListTimers returns the recorded intervals for each run, ordered by index.
func (s *Store) ListTimers(ctx context.Context, runIDs []int64) (map[int64][]model.TimerRecord, error) {
	result := map[int64][]model.TimerRecord{}
	if len(runIDs) == 0 {
		return result, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT run_id, idx, hours, minutes, seconds, micros
		FROM run_timers
		WHERE run_id IN (%s)
		ORDER BY run_id, idx`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var tr model.TimerRecord
		if err := rows.Scan(&tr.RunID, &tr.Index, &tr.Hours, &tr.Minutes, &tr.Seconds, &tr.Micros); err != nil {
			return nil, err
		}
		result[tr.RunID] = append(result[tr.RunID], tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
