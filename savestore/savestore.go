// Package savestore keeps named save slots in a SQLite catalog next
// to the raw snapshot blobs, so players can list and reload games by
// name across sessions.
package savestore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	name     TEXT PRIMARY KEY,
	turn     INTEGER NOT NULL,
	score    INTEGER NOT NULL,
	saved_at TEXT NOT NULL,
	data     BLOB NOT NULL
);`

// Slot describes one stored save without its payload.
type Slot struct {
	Name    string
	Turn    int
	Score   int
	SavedAt time.Time
}

// Store is a catalog of save slots backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates or opens the catalog at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening save catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing save catalog: %w", err)
	}
	return &Store{db: db}, nil
}

// Put writes or replaces the named slot.
func (s *Store) Put(name string, turn, score int, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (name, turn, score, saved_at, data)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   turn = excluded.turn,
		   score = excluded.score,
		   saved_at = excluded.saved_at,
		   data = excluded.data`,
		name, turn, score, time.Now().UTC().Format(time.RFC3339), data)
	if err != nil {
		return fmt.Errorf("writing save %q: %w", name, err)
	}
	return nil
}

// Get returns the payload of the named slot.
func (s *Store) Get(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM saves WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no save named %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", name, err)
	}
	return data, nil
}

// Delete removes the named slot.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM saves WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting save %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no save named %q", name)
	}
	return nil
}

// List returns all slots, newest first.
func (s *Store) List() ([]Slot, error) {
	rows, err := s.db.Query(
		`SELECT name, turn, score, saved_at FROM saves
		 ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var sl Slot
		var stamp string
		if err := rows.Scan(&sl.Name, &sl.Turn, &sl.Score, &stamp); err != nil {
			return nil, err
		}
		sl.SavedAt, _ = time.Parse(time.RFC3339, stamp)
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
