// Package storage provides SQLite-based persistence for run history:
// prestige resets and play sessions. Uses the pure-Go modernc.org/sqlite
// driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/isotopegame/isotope/internal/econ"
)

// Store manages the SQLite database connection for history persistence.
type Store struct {
	db *sql.DB
}

// PrestigeEntry records one prestige reset.
type PrestigeEntry struct {
	ID            int64
	Level         int
	CashSpent     float64
	TotalEarnings float64
	CreatedAt     time.Time
}

// SessionEntry records one play session.
type SessionEntry struct {
	ID            int64
	DurationSecs  int
	CashEnd       float64
	TotalEarnings float64
	Achievements  int
	CreatedAt     time.Time
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
		CREATE TABLE IF NOT EXISTS prestiges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			cash_spent REAL NOT NULL,
			total_earnings REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_prestiges_level ON prestiges(level);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			duration_secs INTEGER NOT NULL,
			cash_end REAL NOT NULL,
			total_earnings REAL NOT NULL,
			achievements INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// RecordPrestige stores one prestige reset. Returns the inserted ID.
func (s *Store) RecordPrestige(level int, cashSpent, totalEarnings econ.Micros) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO prestiges (level, cash_spent, total_earnings) VALUES (?, ?, ?)",
		level, cashSpent.Float(), totalEarnings.Float(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record prestige: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordSession stores one play session. Returns the inserted ID.
func (s *Store) RecordSession(duration time.Duration, cashEnd, totalEarnings econ.Micros, achievements int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (duration_secs, cash_end, total_earnings, achievements) VALUES (?, ?, ?, ?)",
		int(duration.Seconds()), cashEnd.Float(), totalEarnings.Float(), achievements,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Prestiges retrieves the most recent prestige resets, newest first.
func (s *Store) Prestiges(limit int) ([]PrestigeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, cash_spent, total_earnings, created_at
		 FROM prestiges
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query prestiges: %w", err)
	}
	defer rows.Close()

	var entries []PrestigeEntry
	for rows.Next() {
		var e PrestigeEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Level, &e.CashSpent, &e.TotalEarnings, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Sessions retrieves the most recent play sessions, newest first.
func (s *Store) Sessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, duration_secs, cash_end, total_earnings, achievements, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.DurationSecs, &e.CashEnd, &e.TotalEarnings, &e.Achievements, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats contains aggregated lifetime statistics.
type Stats struct {
	SessionCount  int
	TotalPlaytime time.Duration
	BestEarnings  float64
	PrestigeCount int
	HighestLevel  int
}

// GetStats retrieves aggregated statistics across all recorded history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var playtimeSecs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(duration_secs), 0), COALESCE(MAX(total_earnings), 0)
		 FROM sessions`,
	).Scan(&stats.SessionCount, &playtimeSecs, &stats.BestEarnings)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	stats.TotalPlaytime = time.Duration(playtimeSecs) * time.Second

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0) FROM prestiges`,
	).Scan(&stats.PrestigeCount, &stats.HighestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get prestige stats: %w", err)
	}

	return stats, nil
}

// Clear deletes all recorded history.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM prestiges"); err != nil {
		return fmt.Errorf("storage: cannot clear prestiges: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
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
