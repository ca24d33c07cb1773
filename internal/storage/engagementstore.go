package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EngagementStore persists contextual engagement snapshots (conversation
// summaries, coaching notes) and implements core.EngagementContextProvider.
type EngagementStore struct {
	db *DB
	// recencyDays and minSize gate what counts as usable recent context.
	recencyDays int
	minSize     int
}

// NewEngagementStore creates an engagement store. recencyDays bounds how
// old a snapshot may be and minSize how small it may be to still count as
// recent context.
func NewEngagementStore(db *DB, recencyDays, minSize int) *EngagementStore {
	return &EngagementStore{
		db:          db,
		recencyDays: recencyDays,
		minSize:     minSize,
	}
}

// SaveContext stores an engagement snapshot and returns its id.
func (s *EngagementStore) SaveContext(ctx context.Context, userID, payload string, capturedAt time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO engagement_context (id, user_id, payload, captured_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, id, userID, payload, capturedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("saving engagement context for %s: %w", userID, err)
	}
	return id, nil
}

// HasRecentContext reports whether a snapshot captured inside the recency
// window exists with a payload of meaningful size.
func (s *EngagementStore) HasRecentContext(ctx context.Context, userID string) (bool, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.recencyDays)

	var size int
	query := `
		SELECT LENGTH(payload) FROM engagement_context
		WHERE user_id = ? AND captured_at > ?
		ORDER BY captured_at DESC LIMIT 1
	`
	err := s.db.GetContext(ctx, &size, query, userID, cutoff)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading engagement context for %s: %w", userID, err)
	}

	return size >= s.minSize, nil
}
