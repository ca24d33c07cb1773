package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Checkin is a single user data point: a logged workout, meal, sleep
// record, or mood entry. Check-ins are what the engine counts against the
// watermark to measure new signal.
type Checkin struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Kind       string    `db:"kind"`
	Note       string    `db:"note"`
	RecordedAt time.Time `db:"recorded_at"`
}

// CheckinStore persists check-ins and implements core.DataPointCounter.
type CheckinStore struct {
	db *DB
}

// NewCheckinStore creates a new check-in store.
func NewCheckinStore(db *DB) *CheckinStore {
	return &CheckinStore{db: db}
}

// RecordCheckin stores a check-in and returns its id.
func (s *CheckinStore) RecordCheckin(ctx context.Context, userID, kind, note string, recordedAt time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO checkins (id, user_id, kind, note, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, id, userID, kind, note, recordedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("recording checkin for %s: %w", userID, err)
	}
	return id, nil
}

// CountSince counts check-ins recorded after the given watermark.
func (s *CheckinStore) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM checkins WHERE user_id = ? AND recorded_at > ?`
	if err := s.db.GetContext(ctx, &count, query, userID, since.UTC()); err != nil {
		return 0, fmt.Errorf("counting checkins for %s: %w", userID, err)
	}
	return count, nil
}

// Recent returns the user's most recent check-ins, newest first.
func (s *CheckinStore) Recent(ctx context.Context, userID string, limit int) ([]Checkin, error) {
	var checkins []Checkin
	query := `SELECT id, user_id, kind, COALESCE(note, '') AS note, recorded_at FROM checkins WHERE user_id = ? ORDER BY recorded_at DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &checkins, query, userID, limit); err != nil {
		return nil, fmt.Errorf("listing checkins for %s: %w", userID, err)
	}
	return checkins, nil
}
