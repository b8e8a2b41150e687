// Package store persists room state to sqlite, one JSON document per room
// keyed by room name under a shared euchre_rooms table, following the
// teacher's pkg/server/internal/db pattern of wrapping *sql.DB with a small
// schema-migration helper. One row per room (rather than one document for
// the whole map) lets each room's single-writer actor persist its own
// commits without reading state owned by another room's goroutine.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// Store wraps a sqlite connection holding the durable rooms map.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and connects to the sqlite database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS euchre_rooms (
			name       TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRoom atomically overwrites room's persisted row, matching spec.md
// §5's "atomically overwritten per commit" requirement. Called on the
// room's own actor goroutine, so room is never read concurrently with a
// mutation.
func (s *Store) SaveRoom(room *euchre.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room %q: %w", room.Name, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO euchre_rooms (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, room.Name, string(data), time.Now().UTC())
	return err
}

// DeleteRoom removes room's persisted row, used on creator deletion and TTL
// reap.
func (s *Store) DeleteRoom(name string) error {
	_, err := s.db.Exec(`DELETE FROM euchre_rooms WHERE name = ?`, name)
	return err
}

// LoadAll restores every persisted room, clearing the connected flag on
// every non-bot player per spec.md §6's cold-start restore rule. Returns an
// empty, non-nil map if nothing has ever been persisted.
func (s *Store) LoadAll() (map[string]*euchre.Room, error) {
	rows, err := s.db.Query(`SELECT data FROM euchre_rooms`)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	defer rows.Close()

	rooms := map[string]*euchre.Room{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		var r euchre.Room
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal room: %w", err)
		}

		for _, p := range r.Players {
			if !p.IsBot {
				p.Connected = false
			}
		}
		r.RelinkAfterRestore()
		rooms[r.Name] = &r
	}
	return rooms, rows.Err()
}
