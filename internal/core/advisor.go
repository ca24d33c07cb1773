package core

import (
	"context"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// AnalysisAdvisor is the adapter between the stateless engine and the
// persistence layer: it reads the watermark once, counts new data points
// against that fixed value, and passes both through a single Decide call.
// Reading the watermark exactly once per call avoids races between the
// count and a watermark that moved mid-decision.
type AnalysisAdvisor interface {
	// Advise produces a freshness decision for a user. Watermark and count
	// read failures degrade (nil watermark, zero count) rather than failing
	// the call.
	Advise(ctx context.Context, userID string, requestedArchetype models.Archetype, forceRefresh bool) (models.AnalysisDecision, models.DecisionMetadata)
}

type analysisAdvisor struct {
	engine      FreshnessEngine
	watermarks  WatermarkProvider
	dataPoints  DataPointCounter
	eventLogger EventLogger
}

// NewAnalysisAdvisor creates an AnalysisAdvisor. eventLogger may be nil.
func NewAnalysisAdvisor(engine FreshnessEngine, watermarks WatermarkProvider, dataPoints DataPointCounter, eventLogger EventLogger) AnalysisAdvisor {
	return &analysisAdvisor{
		engine:      engine,
		watermarks:  watermarks,
		dataPoints:  dataPoints,
		eventLogger: eventLogger,
	}
}

func (s *analysisAdvisor) Advise(ctx context.Context, userID string, requestedArchetype models.Archetype, forceRefresh bool) (models.AnalysisDecision, models.DecisionMetadata) {
	req := models.DecisionRequest{
		UserID:             userID,
		RequestedArchetype: requestedArchetype,
		ForceRefresh:       forceRefresh,
	}
	var degraded []string

	watermark, err := s.readWatermark(ctx, userID, requestedArchetype)
	if err != nil {
		// Treated as no previous analysis; the engine will decide fresh.
		degraded = append(degraded, "watermark unavailable: "+err.Error())
	} else if watermark != nil {
		completedAt := watermark.CompletedAt
		req.LastAnalysis = &completedAt
		req.LastArchetype = models.Archetype(watermark.Archetype)
	}

	if req.LastAnalysis != nil {
		count, err := s.dataPoints.CountSince(ctx, userID, *req.LastAnalysis)
		if err != nil {
			degraded = append(degraded, "data point count unavailable: "+err.Error())
		} else {
			req.NewDataPoints = count
		}
	}

	decision, meta := s.engine.Decide(ctx, req)
	meta.Degradations = append(degraded, meta.Degradations...)

	s.logEvent("decision.made", map[string]any{
		"decision_id":    meta.DecisionID,
		"user_id":        userID,
		"archetype":      string(requestedArchetype),
		"decision":       string(decision),
		"reason":         meta.Reason,
		"threshold":      meta.Threshold,
		"new_data":       meta.NewDataPoints,
		"days_since":     meta.DaysSinceAnalysis,
		"memory_quality": string(meta.MemoryQuality),
		"analysis_mode":  string(meta.AnalysisMode),
	})
	if meta.ArchetypeChange {
		s.logEvent("decision.archetype_change", map[string]any{
			"decision_id": meta.DecisionID,
			"user_id":     userID,
			"from":        string(meta.PreviousArchetype),
			"to":          string(requestedArchetype),
		})
	}
	if len(meta.Degradations) > 0 {
		s.logEvent("decision.degraded", map[string]any{
			"decision_id":  meta.DecisionID,
			"user_id":      userID,
			"degradations": meta.Degradations,
		})
	}

	return decision, meta
}

// readWatermark fetches the watermark scoped to the requested archetype,
// falling back to the user's latest analysis under any archetype. The
// fallback carries the archetype it ran under so the engine can detect a
// switch.
func (s *analysisAdvisor) readWatermark(ctx context.Context, userID string, requested models.Archetype) (*AnalysisWatermark, error) {
	if requested != "" {
		w, err := s.watermarks.LatestAnalysis(ctx, userID, string(requested))
		if err != nil {
			return nil, err
		}
		if w != nil {
			return w, nil
		}
	}

	return s.watermarks.LatestAnalysis(ctx, userID, "")
}

func (s *analysisAdvisor) logEvent(eventType string, data map[string]any) {
	if s.eventLogger != nil {
		_ = s.eventLogger.LogEvent(eventType, data)
	}
}
