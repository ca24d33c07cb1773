package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/valter-silva-au/wellness-brain/internal/core"
)

// AnalysisStore persists completed analyses. It implements the
// core.WatermarkProvider and core.AnalysisDepthProvider read contracts;
// the watermark write belongs to the caller after a fresh analysis
// completes, never to the decision engine.
type AnalysisStore struct {
	db *DB
}

// NewAnalysisStore creates a new analysis store.
func NewAnalysisStore(db *DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// RecordAnalysis stores a completed analysis and returns its id. This moves
// the user's watermark.
func (s *AnalysisStore) RecordAnalysis(ctx context.Context, userID string, archetype string, analysisType core.AnalysisType, completedAt time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO analyses (id, user_id, archetype, analysis_type, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, id, userID, archetype, string(analysisType), completedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("recording analysis for %s: %w", userID, err)
	}
	return id, nil
}

// LatestAnalysis returns the watermark of the most recent analysis for the
// user, scoped to archetype when non-empty. A user with no analyses yields
// nil, not an error.
func (s *AnalysisStore) LatestAnalysis(ctx context.Context, userID string, archetype string) (*core.AnalysisWatermark, error) {
	var row struct {
		Archetype   string    `db:"archetype"`
		CompletedAt time.Time `db:"completed_at"`
	}

	var err error
	if archetype != "" {
		query := `
			SELECT archetype, completed_at FROM analyses
			WHERE user_id = ? AND archetype = ?
			ORDER BY completed_at DESC LIMIT 1
		`
		err = s.db.GetContext(ctx, &row, query, userID, archetype)
	} else {
		query := `
			SELECT archetype, completed_at FROM analyses
			WHERE user_id = ?
			ORDER BY completed_at DESC LIMIT 1
		`
		err = s.db.GetContext(ctx, &row, query, userID)
	}

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading watermark for %s: %w", userID, err)
	}

	return &core.AnalysisWatermark{
		CompletedAt: row.CompletedAt,
		Archetype:   row.Archetype,
	}, nil
}

// CountPriorAnalyses counts completed analyses of the given type for a
// user, scoped to archetype when non-empty.
func (s *AnalysisStore) CountPriorAnalyses(ctx context.Context, userID string, analysisType core.AnalysisType, archetype string) (int, error) {
	var count int
	var err error
	if archetype != "" {
		query := `SELECT COUNT(*) FROM analyses WHERE user_id = ? AND analysis_type = ? AND archetype = ?`
		err = s.db.GetContext(ctx, &count, query, userID, string(analysisType), archetype)
	} else {
		query := `SELECT COUNT(*) FROM analyses WHERE user_id = ? AND analysis_type = ?`
		err = s.db.GetContext(ctx, &count, query, userID, string(analysisType))
	}
	if err != nil {
		return 0, fmt.Errorf("counting %s analyses for %s: %w", analysisType, userID, err)
	}
	return count, nil
}
