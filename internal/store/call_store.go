package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tavolahq/tavola/internal/domain"
)

// ErrNotFound is returned when a call record does not exist.
var ErrNotFound = errors.New("store: call not found")

// CallStore persists finished call records. Bookings and orders are
// relayed live and never written down; what the store keeps is the
// transcript and how the call ended.
type CallStore interface {
	Save(rec domain.CallRecord) error
	Get(id string) (*domain.CallRecord, error)
	// List returns the most recent calls, newest first, without turns.
	List(limit int) ([]domain.CallRecord, error)
	// Search finds transcript turns matching an FTS query.
	Search(query string, limit int) ([]TurnMatch, error)
	Close() error
}

// TurnMatch is one transcript hit from a full-text search.
type TurnMatch struct {
	CallID string    `json:"callId"`
	Role   string    `json:"role"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// SQLiteCallStore implements CallStore backed by SQLite.
type SQLiteCallStore struct {
	db *DB
}

// NewSQLiteCallStore creates a call store using the given database.
func NewSQLiteCallStore(db *DB) *SQLiteCallStore {
	return &SQLiteCallStore{db: db}
}

// Save writes the record and its turns in one transaction.
func (s *SQLiteCallStore) Save(rec domain.CallRecord) error {
	tx, err := s.db.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO calls (id, started_at, ended_at, outcome) VALUES (?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.EndedAt.UTC().Format(time.RFC3339),
		string(rec.Outcome),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("inserting call %s: %w", rec.ID, err)
	}

	for _, turn := range rec.Turns {
		if _, err := tx.Exec(
			`INSERT INTO turns (call_id, role, text, at) VALUES (?, ?, ?, ?)`,
			rec.ID, string(turn.Role), turn.Text, turn.At.UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting turn for call %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.db.log.Debug().Str("callId", rec.ID).Int("turns", len(rec.Turns)).Msg("call saved")
	return nil
}

// Get returns a call with its full transcript.
func (s *SQLiteCallStore) Get(id string) (*domain.CallRecord, error) {
	var rec domain.CallRecord
	var startedAt, endedAt, outcome string
	err := s.db.sql.QueryRow(
		`SELECT id, started_at, ended_at, outcome FROM calls WHERE id = ?`, id,
	).Scan(&rec.ID, &startedAt, &endedAt, &outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading call %s: %w", id, err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	rec.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
	rec.Outcome = domain.CallOutcome(outcome)

	rows, err := s.db.sql.Query(
		`SELECT role, text, at FROM turns WHERE call_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading turns for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var role, text, at string
		if err := rows.Scan(&role, &text, &at); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turn := domain.Turn{Role: domain.Role(role), Text: text}
		turn.At, _ = time.Parse(time.RFC3339, at)
		rec.Turns = append(rec.Turns, turn)
	}
	return &rec, rows.Err()
}

// List returns the most recent calls, newest first, without turns.
// Limit of 0 defaults to 50.
func (s *SQLiteCallStore) List(limit int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.sql.Query(
		`SELECT id, started_at, ended_at, outcome
		 FROM calls ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}
	defer rows.Close()

	var out []domain.CallRecord
	for rows.Next() {
		var rec domain.CallRecord
		var startedAt, endedAt, outcome string
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &outcome); err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		rec.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		rec.Outcome = domain.CallOutcome(outcome)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Search finds transcript turns matching the query using FTS5.
// Results are ranked by relevance. Limit of 0 defaults to 20.
func (s *SQLiteCallStore) Search(query string, limit int) ([]TurnMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.sql.Query(
		`SELECT t.call_id, t.role, t.text, t.at
		 FROM turns_fts
		 JOIN turns t ON t.id = turns_fts.rowid
		 WHERE turns_fts MATCH ?
		 ORDER BY rank LIMIT ?`, query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching turns: %w", err)
	}
	defer rows.Close()

	var out []TurnMatch
	for rows.Next() {
		var m TurnMatch
		var at string
		if err := rows.Scan(&m.CallID, &m.Role, &m.Text, &at); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.At, _ = time.Parse(time.RFC3339, at)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteCallStore) Close() error {
	return s.db.Close()
}
