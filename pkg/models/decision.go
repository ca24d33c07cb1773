package models

import "time"

// AnalysisDecision is the three-way freshness choice: run a new behavioral
// analysis, reuse a cached one with recent context, or force a refresh
// because the cache is stale.
type AnalysisDecision string

const (
	FreshAnalysis       AnalysisDecision = "fresh_analysis"
	MemoryEnhancedCache AnalysisDecision = "memory_enhanced_cache"
	StaleForceRefresh   AnalysisDecision = "stale_force_refresh"
)

// AnalysisMode tells the plan-generation pipeline whether the next analysis
// should start from scratch or build on the previous one.
type AnalysisMode string

const (
	ModeInitial  AnalysisMode = "initial"
	ModeFollowUp AnalysisMode = "follow_up"
)

// DecisionRequest carries the explicit inputs of a single freshness
// decision. LastAnalysis is the watermark read once by the caller and passed
// through unchanged; the engine never re-reads it.
type DecisionRequest struct {
	UserID             string     `json:"user_id"`
	RequestedArchetype Archetype  `json:"requested_archetype,omitempty"`
	ForceRefresh       bool       `json:"force_refresh"`
	LastAnalysis       *time.Time `json:"last_analysis,omitempty"`
	LastArchetype      Archetype  `json:"last_archetype,omitempty"`
	NewDataPoints      int        `json:"new_data_points"`
}

// DecisionMetadata is the structured bag attached to every decision. Every
// field has a defined value on every path, including early exits; the plan
// generation pipeline depends on it never being partially populated.
type DecisionMetadata struct {
	DecisionID         string        `json:"decision_id"`
	NewDataPoints      int           `json:"new_data_points"`
	HoursSinceAnalysis float64       `json:"hours_since_analysis"`
	DaysSinceAnalysis  float64       `json:"days_since_analysis"`
	Threshold          int           `json:"threshold"`
	MemoryQuality      MemoryQuality `json:"memory_quality"`
	Reason             string        `json:"reason"`
	AnalysisMode       AnalysisMode  `json:"analysis_mode"`
	DaysToFetch        int           `json:"days_to_fetch"`
	ArchetypeChange    bool          `json:"archetype_change"`
	PreviousArchetype  Archetype     `json:"previous_archetype,omitempty"`
	// Degradations lists collaborator lookups that failed and were scored
	// as their safe minimum. Observability only; never affects the caller.
	Degradations []string `json:"degradations,omitempty"`
}
