// Package storage provides a SQLite-backed ledger of finished rounds.
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

	"github.com/vovakirdan/breakoutish/internal/games/breakout"
)

// MemoryDSN opens a ledger that lives only as long as the process.
const MemoryDSN = ":memory:"

// Store manages the SQLite connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is one ledger row: a round that ended in a reset.
type Run struct {
	ID        int64
	Player    string
	Kind      string // "game_over" or "level_clear"
	Score     int
	Lives     int
	Steps     uint64
	CreatedAt time.Time
}

// Stats contains aggregated ledger statistics.
type Stats struct {
	Runs        int
	GameOvers   int
	LevelClears int
	HighScore   int
	AvgScore    float64
	LastPlayed  time.Time
}

// Open opens the ledger at dsn. An empty dsn or MemoryDSN keeps the ledger
// in memory; anything else is a database file path, created with its parent
// directories if needed.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	memory := dsn == MemoryDSN

	if !memory {
		// Expand ~ to home directory
		if dsn[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dsn = filepath.Join(home, dsn[1:])
		}

		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
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
			player TEXT NOT NULL,
			kind TEXT NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// Record stores a finished round and returns its ID.
func (s *Store) Record(run Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (player, kind, score, lives, steps) VALUES (?, ?, ?, ?, ?)",
		run.Player, run.Kind, run.Score, run.Lives, int64(run.Steps), //#nosec G115 -- step counts stay far below MaxInt64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordReset stores the round ended by a world reset.
func (s *Store) RecordReset(player string, ev breakout.ResetEvent) (int64, error) {
	return s.Record(Run{
		Player: player,
		Kind:   ev.Kind.String(),
		Score:  ev.Score,
		Lives:  ev.Lives,
		Steps:  ev.Step,
	})
}

// TopRuns returns the best runs ordered by score descending.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, kind, score, lives, steps, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns returns the most recent runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, kind, score, lives, steps, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var steps int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Kind, &r.Score, &r.Lives, &steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Steps = uint64(steps) //#nosec G115 -- written from a uint64
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the highest recorded score, or 0 for an empty ledger.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Count returns the number of recorded runs.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// Stats returns aggregated statistics over the whole ledger.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(kind = 'game_over'), 0),
		        COALESCE(SUM(kind = 'level_clear'), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.GameOvers, &stats.LevelClears, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
