// store.go - SQLite-Historie fuer Uebersetzungen
//
// Enthaelt: Store struct, New, Close, Add, List
//
// SQLite verwaltet sein eigenes Locking fuer konkurrierende Zugriffe;
// im WAL-Modus blockieren Leser die Schreiber nicht. Daher braucht es
// keine Application-Level-Locks fuer die Historien-Operationen.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite-Treiber registrieren
)

// Translation is one recorded request/result pair.
type Translation struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Result    string    `json:"result"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps the SQLite connection holding the translation history.
type Store struct {
	conn *sql.DB
}

// New opens (and if necessary creates) the history database at path.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.init(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return s, nil
}

// Close schliesst die Datenbankverbindung
func (s *Store) Close() error {
	_, _ = s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
	return s.conn.Close()
}

// init initialisiert das Datenbankschema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		result TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_translations_created_at ON translations(created_at);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Add records one finished translation and returns its id.
func (s *Store) Add(source, result string, duration time.Duration) (string, error) {
	id := uuid.NewString()

	_, err := s.conn.Exec(
		`INSERT INTO translations (id, source, result, duration_ms, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, result, duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert translation: %w", err)
	}

	return id, nil
}

// List returns the most recent translations, newest first. limit <= 0
// returns everything.
func (s *Store) List(limit int) ([]Translation, error) {
	query := `
		SELECT id, source, result, duration_ms, created_at
		FROM translations
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.Source, &t.Result, &t.Duration, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}

	return translations, nil
}
