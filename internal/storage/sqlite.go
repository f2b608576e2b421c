// Package storage provides SQLite-based persistence for finished play sessions.
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

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished play session.
type Session struct {
	ID           int64
	GameID       string
	Player       string
	Swaps        int
	Passes       int
	Cleared      int
	LongestChain int
	Duration     time.Duration // Stored with second precision
	CreatedAt    time.Time
}

// Totals aggregates all sessions of a game.
type Totals struct {
	GameID       string
	Sessions     int
	Swaps        int
	Cleared      int
	LongestChain int
	PlayTime     time.Duration
	LastPlayed   time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			swaps INTEGER NOT NULL DEFAULT 0,
			passes INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			longest_chain INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(game_id, created_at DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (game_id, player, swaps, passes, cleared, longest_chain, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.GameID,
		sess.Player,
		sess.Swaps,
		sess.Passes,
		sess.Cleared,
		sess.LongestChain,
		int64(sess.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the latest sessions for a game, newest first.
// An empty gameID returns sessions of every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, swaps, passes, cleared, longest_chain, duration_secs, created_at
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var secs int64
		var createdAt any
		if err := rows.Scan(
			&sess.ID,
			&sess.GameID,
			&sess.Player,
			&sess.Swaps,
			&sess.Passes,
			&sess.Cleared,
			&sess.LongestChain,
			&secs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		sess.Duration = time.Duration(secs) * time.Second
		sess.CreatedAt = parseTimestamp(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Totals returns aggregated statistics for a game.
// A game with no sessions yields zero totals.
func (s *Store) Totals(gameID string) (*Totals, error) {
	t := &Totals{GameID: gameID}

	var secs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(swaps), 0), COALESCE(SUM(cleared), 0),
		        COALESCE(MAX(longest_chain), 0), COALESCE(SUM(duration_secs), 0)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&t.Sessions, &t.Swaps, &t.Cleared, &t.LongestChain, &secs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}
	t.PlayTime = time.Duration(secs) * time.Second

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		t.LastPlayed = parseTimestamp(lastPlayed)
	}

	return t, nil
}

// AllTotals returns totals for every game that has been played.
func (s *Store) AllTotals() (map[string]*Totals, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(swaps), SUM(cleared), MAX(longest_chain), SUM(duration_secs), MAX(created_at)
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]*Totals)
	for rows.Next() {
		var t Totals
		var secs int64
		var lastPlayed any
		if err := rows.Scan(&t.GameID, &t.Sessions, &t.Swaps, &t.Cleared, &t.LongestChain, &secs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan totals row: %w", err)
		}
		t.PlayTime = time.Duration(secs) * time.Second
		t.LastPlayed = parseTimestamp(lastPlayed)
		totals[t.GameID] = &t
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return totals, nil
}

// ClearSessions deletes all sessions for the given game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
