package models

// Compatibility classifies how well two archetypes' plans carry over.
type Compatibility string

const (
	Compatible     Compatibility = "compatible"
	SemiCompatible Compatibility = "semi_compatible"
	Incompatible   Compatibility = "incompatible"
)

// TransitionStrategy describes how a user's plan should move from one
// archetype to another.
type TransitionStrategy string

const (
	// StrategyAdaptive keeps the existing plan and adapts it in place.
	StrategyAdaptive TransitionStrategy = "adaptive"
	// StrategyGradualBlend phases the new archetype in over a blend window.
	StrategyGradualBlend TransitionStrategy = "gradual_blend"
	// StrategyFreshStart discards the old plan and starts over.
	StrategyFreshStart TransitionStrategy = "fresh_start"
)

// TransitionPlan is the longer-form transition assessment surfaced to the
// coaching UI. It is informational; the hard cache-invalidation gate is a
// separate, more conservative check.
type TransitionPlan struct {
	From           Archetype          `json:"from"`
	To             Archetype          `json:"to"`
	Strategy       TransitionStrategy `json:"strategy"`
	ForceFresh     bool               `json:"force_fresh"`
	TransitionDays int                `json:"transition_days"`
	Compatibility  Compatibility      `json:"compatibility"`
	Reason         string             `json:"reason"`
	Timeline       []string           `json:"timeline,omitempty"`
	Guidance       []string           `json:"guidance,omitempty"`
	SuccessMetrics []string           `json:"success_metrics,omitempty"`
}
