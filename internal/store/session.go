package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session is one run of the recognition pipeline, from enable to disable.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
}

// RecognitionEvent records a stable letter promotion within a session.
type RecognitionEvent struct {
	ID         int64
	SessionID  string
	Letter     string
	Confidence float64
	At         time.Time
}

// SessionRepository provides operations for sessions and their events.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new open session.
func (r *SessionRepository) Start(sess *Session) error {
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		sess.ID, sess.StartedAt,
	)
	return err
}

// End marks a session as finished.
func (r *SessionRepository) End(id string, at time.Time) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		at, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, started_at, ended_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.StartedAt, &endedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var endedAt sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

// RecordEvent appends a recognition event to a session.
func (r *SessionRepository) RecordEvent(ev *RecognitionEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	result, err := r.db.Exec(
		`INSERT INTO recognition_events (session_id, letter, confidence, at)
		 VALUES (?, ?, ?, ?)`,
		ev.SessionID, ev.Letter, ev.Confidence, ev.At,
	)
	if err != nil {
		return err
	}

	ev.ID, err = result.LastInsertId()
	return err
}

// Events retrieves all events for a session in chronological order.
func (r *SessionRepository) Events(sessionID string) ([]*RecognitionEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, letter, confidence, at
		 FROM recognition_events WHERE session_id = ? ORDER BY at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*RecognitionEvent
	for rows.Next() {
		ev := &RecognitionEvent{}
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Letter, &ev.Confidence, &ev.At); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
