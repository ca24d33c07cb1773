package core

import (
	"context"
	"time"
)

// AnalysisType distinguishes the two historical analysis families whose
// depth feeds memory quality.
type AnalysisType string

const (
	AnalysisBehavior  AnalysisType = "behavior"
	AnalysisCircadian AnalysisType = "circadian"
)

// AnalysisWatermark is the timestamp of a user's last completed analysis
// together with the archetype it ran under.
type AnalysisWatermark struct {
	CompletedAt time.Time
	Archetype   string
}

// WatermarkProvider reads the watermark of the last completed analysis for
// a user, optionally scoped to an archetype (empty archetype means any).
// The watermark is owned by the persistence layer; core only ever reads it.
// This interface is defined locally in core to avoid importing storage.
type WatermarkProvider interface {
	// LatestAnalysis returns nil when no matching analysis exists.
	LatestAnalysis(ctx context.Context, userID string, archetype string) (*AnalysisWatermark, error)
}

// DataPointCounter counts new user records since a watermark. A failed
// count degrades to zero at the call site.
type DataPointCounter interface {
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// AnalysisDepthProvider counts prior analyses of a given type for a user.
// archetype may be empty to count across all archetypes. A failed count
// degrades to zero at the call site.
type AnalysisDepthProvider interface {
	CountPriorAnalyses(ctx context.Context, userID string, analysisType AnalysisType, archetype string) (int, error)
}

// EngagementContextProvider reports whether recent contextual engagement
// data of meaningful size exists for a user. A failure degrades to false
// at the call site.
type EngagementContextProvider interface {
	HasRecentContext(ctx context.Context, userID string) (bool, error)
}
