// Package storage provides SQLite-based persistence for mission records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CompletionEntry is one recorded mission completion.
type CompletionEntry struct {
	ID           int64
	Nickname     string
	MissionID    string
	XP           int
	DurationSecs int
	HintsUsed    int
	CompletedAt  time.Time
}

// LeaderboardEntry aggregates a player's completions.
type LeaderboardEntry struct {
	Nickname    string
	TotalXP     int
	Completions int
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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nickname TEXT NOT NULL,
			mission_id TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_nickname ON completions(nickname);
		CREATE INDEX IF NOT EXISTS idx_completions_mission ON completions(mission_id, duration_secs);
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

// SaveCompletion records a finished mission.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(nickname, missionID string, xp, durationSecs, hintsUsed int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (nickname, mission_id, xp, duration_secs, hints_used) VALUES (?, ?, ?, ?, ?)",
		nickname, missionID, xp, durationSecs, hintsUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Completions retrieves a player's mission records, most recent first.
func (s *Store) Completions(nickname string) ([]CompletionEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, nickname, mission_id, xp, duration_secs, hints_used, completed_at
		 FROM completions
		 WHERE nickname = ?
		 ORDER BY completed_at DESC, id DESC`,
		nickname,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// BestTime returns the fastest recorded duration for a mission in seconds.
// Returns 0 when the mission has never been completed.
func (s *Store) BestTime(missionID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(duration_secs) FROM completions WHERE mission_id = ?",
		missionID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Leaderboard returns players ranked by total XP, capped at limit.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT nickname, SUM(xp), COUNT(*)
		 FROM completions
		 GROUP BY nickname
		 ORDER BY SUM(xp) DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Nickname, &e.TotalXP, &e.Completions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearPlayer deletes every record for a nickname.
func (s *Store) ClearPlayer(nickname string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE nickname = ?", nickname)
	if err != nil {
		return fmt.Errorf("storage: cannot clear player records: %w", err)
	}
	return nil
}

func scanCompletions(rows *sql.Rows) ([]CompletionEntry, error) {
	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var completedAt any
		if err := rows.Scan(&e.ID, &e.Nickname, &e.MissionID, &e.XP, &e.DurationSecs, &e.HintsUsed, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := completedAt.(type) {
		case time.Time:
			e.CompletedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CompletedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
