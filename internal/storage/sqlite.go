// Package storage persists finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultFormat is stored for runs saved without a board format.
const DefaultFormat = "standard"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished game with the counters beyond its score.
type RunRecord struct {
	ID          int64     `json:"id"`
	GameID      string    `json:"game_id"`
	Score       int       `json:"score"`
	Level       int       `json:"level"`
	Lines       int       `json:"lines"`
	MaxCombo    int       `json:"max_combo"`
	CoffeeBonus int       `json:"coffee_bonus"`
	Format      string    `json:"format"`
	CreatedAt   time.Time `json:"created_at"`
}

// FormatStats aggregates the runs on one board format.
type FormatStats struct {
	Format     string    `json:"format"`
	Runs       int       `json:"runs"`
	BestScore  int       `json:"best_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalLines int       `json:"total_lines"`
	BestLevel  int       `json:"best_level"`
	BestCombo  int       `json:"best_combo"`
	LastPlayed time.Time `json:"last_played"`
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			coffee_bonus INTEGER NOT NULL DEFAULT 0,
			format TEXT NOT NULL DEFAULT 'standard',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(format, score DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	if run.Format == "" {
		run.Format = DefaultFormat
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, score, level, lines, max_combo, coffee_bonus, format)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Score, run.Level, run.Lines, run.MaxCombo, run.CoffeeBonus, run.Format,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, game_id, score, level, lines, max_combo, coffee_bonus, format, created_at`

// TopRuns retrieves the best runs for a board format, or across all formats
// when format is empty. Ties go to the earlier run.
func (s *Store) TopRuns(format string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE ? = '' OR format = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		format, format, limit,
	)
}

// RecentRuns retrieves the latest runs across all formats, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Level, &r.Lines,
			&r.MaxCombo, &r.CoffeeBonus, &r.Format, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score on a format (all formats when empty),
// or 0 when nothing was recorded.
func (s *Store) BestScore(format string) (int, error) {
	var best int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(score), 0) FROM runs WHERE ? = '' OR format = ?`,
		format, format,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get best score: %w", err)
	}
	return best, nil
}

// ClearRuns deletes the runs of a format, or every run when format is empty.
func (s *Store) ClearRuns(format string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR format = ?", format, format)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the runs on a format, or on all formats when empty.
func (s *Store) Stats(format string) (*FormatStats, error) {
	stats := &FormatStats{Format: format}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(lines), 0), COALESCE(MAX(level), 0), COALESCE(MAX(max_combo), 0),
		        MAX(created_at)
		 FROM runs WHERE ? = '' OR format = ?`,
		format, format,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore,
		&stats.TotalLines, &stats.BestLevel, &stats.BestCombo, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats aggregates the runs of every format that has been played.
func (s *Store) AllStats() (map[string]*FormatStats, error) {
	rows, err := s.db.Query(
		`SELECT format, COUNT(*), MAX(score), AVG(score), SUM(lines), MAX(level), MAX(max_combo), MAX(created_at)
		 FROM runs
		 GROUP BY format`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*FormatStats)
	for rows.Next() {
		var st FormatStats
		var lastPlayed any
		if err := rows.Scan(&st.Format, &st.Runs, &st.BestScore, &st.AvgScore,
			&st.TotalLines, &st.BestLevel, &st.BestCombo, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		all[st.Format] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// parseTime converts a SQLite DATETIME column, which the driver may return
// as time.Time or as a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
