package hint

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoHint is returned by Get when no hint was persisted for the round.
var ErrNoHint = errors.New("hint: no stored hint")

// Store persists one generated hint per (round, answer) so a round reuses
// the same reveal instead of leaking more characters on every request.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and ensures the
// round_hints table exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open hint db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS round_hints (
		round_id   TEXT NOT NULL,
		content    TEXT NOT NULL,
		hint       TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (round_id, content)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create round_hints table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the persisted hint for a round and answer.
func (s *Store) Get(roundID uuid.UUID, content string) (string, error) {
	var hint string
	err := s.db.QueryRow(
		`SELECT hint FROM round_hints WHERE round_id = ? AND content = ?`,
		roundID.String(), content,
	).Scan(&hint)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoHint
	}
	if err != nil {
		return "", fmt.Errorf("get hint for round %s: %w", roundID, err)
	}
	return hint, nil
}

// Put stores a hint for a round and answer, replacing any previous one.
func (s *Store) Put(roundID uuid.UUID, content, hint string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO round_hints (round_id, content, hint, created_at) VALUES (?, ?, ?, ?)`,
		roundID.String(), content, hint, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("put hint for round %s: %w", roundID, err)
	}
	return nil
}
