package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// FreshnessEngine is the top-level decision function: given one user's
// watermark, live data-point count, and requested archetype, it decides
// whether to run a fresh behavioral analysis, reuse the cached one, or
// force a refresh.
//
// Decide never returns an error. Collaborator failures degrade to safe
// minimums and are recorded in the metadata; a wrong-but-safe caching
// decision is always preferable to blocking plan generation. The engine
// holds no mutable state and is safe for concurrent use.
type FreshnessEngine interface {
	Decide(ctx context.Context, req models.DecisionRequest) (models.AnalysisDecision, models.DecisionMetadata)
}

type freshnessEngine struct {
	assessor    MemoryQualityAssessor
	thresholds  ThresholdCalculator
	transitions TransitionAssessor
	cfg         models.EngineConfig
}

// NewFreshnessEngine creates a FreshnessEngine from its collaborators.
// cfg must have passed Validate.
func NewFreshnessEngine(assessor MemoryQualityAssessor, thresholds ThresholdCalculator, transitions TransitionAssessor, cfg models.EngineConfig) FreshnessEngine {
	return &freshnessEngine{
		assessor:    assessor,
		thresholds:  thresholds,
		transitions: transitions,
		cfg:         cfg,
	}
}

// Decide applies the decision rules in order, first match wins:
//
//  1. explicit force refresh
//  2. archetype change that invalidates the cache
//  3. no previous analysis
//  4. staleness ceiling exceeded
//  5. data volume meets the dynamic threshold
//  6. analysis too recent to rerun
//  7. default: reuse cache with recent context
//
// The returned metadata is fully populated on every path.
func (e *freshnessEngine) Decide(ctx context.Context, req models.DecisionRequest) (models.AnalysisDecision, models.DecisionMetadata) {
	now := time.Now().UTC()

	meta := models.DecisionMetadata{
		DecisionID:    uuid.NewString(),
		NewDataPoints: req.NewDataPoints,
		Threshold:     e.cfg.BaseThreshold,
		MemoryQuality: models.MemorySparse,
		AnalysisMode:  models.ModeInitial,
		DaysToFetch:   e.cfg.InitialDaysToFetch,
	}
	if req.LastAnalysis != nil {
		elapsed := now.Sub(*req.LastAnalysis)
		meta.HoursSinceAnalysis = elapsed.Hours()
		meta.DaysSinceAnalysis = elapsed.Hours() / 24
	}

	// Rule 1: explicit force refresh wins over everything.
	if req.ForceRefresh {
		meta.Reason = "explicit force refresh"
		return models.FreshAnalysis, meta
	}

	// Rule 2: an archetype switch may invalidate the cache. The gate only
	// applies when a watermark exists; without one rule 3 forces a fresh
	// analysis anyway.
	if req.RequestedArchetype != "" && req.LastArchetype != "" &&
		req.RequestedArchetype != req.LastArchetype && req.LastAnalysis != nil {
		age := now.Sub(*req.LastAnalysis)
		if e.transitions.ShouldForceFresh(req.LastArchetype, req.RequestedArchetype, age) {
			meta.ArchetypeChange = true
			meta.PreviousArchetype = req.LastArchetype
			meta.Reason = fmt.Sprintf("archetype change from %s to %s invalidates the cached analysis", req.LastArchetype, req.RequestedArchetype)
			return models.FreshAnalysis, meta
		}
	}

	// Rule 3: no watermark means no cache to reuse.
	if req.LastAnalysis == nil {
		meta.Reason = "no previous analysis"
		return models.FreshAnalysis, meta
	}

	// Rule 4: past the staleness ceiling the cache is refreshed regardless
	// of data volume.
	if meta.DaysSinceAnalysis > float64(e.cfg.StalenessDays) {
		meta.Reason = fmt.Sprintf("analysis too old (%.1f days, ceiling %d)", meta.DaysSinceAnalysis, e.cfg.StalenessDays)
		return models.StaleForceRefresh, meta
	}

	// If the call was cancelled before the memory lookups ran, fall back to
	// the cached analysis rather than scoring on a dead context.
	if ctx.Err() != nil {
		meta.AnalysisMode = models.ModeFollowUp
		meta.DaysToFetch = 1
		meta.Reason = "memory lookups unavailable; serving cached analysis"
		meta.Degradations = append(meta.Degradations, ctx.Err().Error())
		return models.MemoryEnhancedCache, meta
	}

	// Rule 5 setup: memory quality and the dynamic threshold.
	assessment := e.assessor.Assess(ctx, req.UserID, req.RequestedArchetype)
	meta.MemoryQuality = assessment.Quality
	meta.Degradations = append(meta.Degradations, assessment.Degraded...)
	meta.Threshold = e.thresholds.Threshold(assessment.Quality, req.RequestedArchetype, meta.DaysSinceAnalysis, e.cfg.BaseThreshold)

	// Rule 5: enough new data justifies a rerun before the cache goes stale.
	if req.NewDataPoints >= meta.Threshold {
		if meta.DaysSinceAnalysis < e.cfg.FollowUpCutoffDays {
			meta.AnalysisMode = models.ModeFollowUp
		} else {
			meta.AnalysisMode = models.ModeInitial
		}
		meta.DaysToFetch = clampInt(int(meta.DaysSinceAnalysis)+1, e.cfg.MinDaysToFetch, e.cfg.MaxDaysToFetch)
		meta.Reason = fmt.Sprintf("data threshold override: %d new data points >= threshold %d", req.NewDataPoints, meta.Threshold)
		return models.FreshAnalysis, meta
	}

	// Rule 6: a very recent analysis is reused as-is.
	if meta.HoursSinceAnalysis < e.cfg.RecentCacheHours {
		meta.AnalysisMode = models.ModeFollowUp
		meta.DaysToFetch = 1
		meta.Reason = "too recent and insufficient data"
		return models.MemoryEnhancedCache, meta
	}

	// Rule 7: default to the cache augmented with recent context.
	meta.AnalysisMode = models.ModeFollowUp
	meta.DaysToFetch = 1
	meta.Reason = "insufficient new data despite time gap"
	return models.MemoryEnhancedCache, meta
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
