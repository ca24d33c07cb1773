package core

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Complexity-difference cutoffs. AssessTransition and ShouldForceFresh use
// different cutoffs on purpose: the first produces an informational plan
// for the UI, the second is the hard cache-invalidation gate consulted by
// the decision engine and is deliberately more conservative.
const (
	planFreshStartComplexityDiff = 5 // AssessTransition: diff > 5 -> fresh start
	planAdaptiveComplexityDiff   = 2 // AssessTransition: diff <= 2 -> adaptive
	gateComplexityDiff           = 4 // ShouldForceFresh: diff > 4 -> force
)

// TransitionAssessor evaluates archetype switches: AssessTransition builds
// the user-facing transition plan, ShouldForceFresh decides whether the
// switch invalidates the cached analysis.
type TransitionAssessor interface {
	AssessTransition(from, to models.Archetype) models.TransitionPlan
	ShouldForceFresh(from, to models.Archetype, lastAnalysisAge time.Duration) bool
}

type transitionAssessor struct {
	compat CompatibilityModel
	// transitionAgeDays is the cache age past which even a compatible
	// switch forces a fresh start.
	transitionAgeDays float64
}

// NewTransitionAssessor creates a TransitionAssessor using the given
// compatibility model and engine config.
func NewTransitionAssessor(compat CompatibilityModel, cfg models.EngineConfig) TransitionAssessor {
	return &transitionAssessor{
		compat:            compat,
		transitionAgeDays: cfg.TransitionAgeDays,
	}
}

// AssessTransition produces the transition plan for a switch from one
// archetype to another: the strategy, the blend window in days, and the
// coaching guidance the UI presents alongside it.
func (t *transitionAssessor) AssessTransition(from, to models.Archetype) models.TransitionPlan {
	if from == to {
		return models.TransitionPlan{
			From:           from,
			To:             to,
			Strategy:       models.StrategyAdaptive,
			ForceFresh:     false,
			TransitionDays: 0,
			Compatibility:  models.Compatible,
			Reason:         "no archetype change",
		}
	}

	compat := t.compat.Compat(from, to)
	diff := complexityDiff(from, to)

	plan := models.TransitionPlan{
		From:          from,
		To:            to,
		Compatibility: compat,
	}

	switch {
	case compat == models.Incompatible || diff > planFreshStartComplexityDiff:
		plan.Strategy = models.StrategyFreshStart
		plan.ForceFresh = true
		plan.TransitionDays = 0
		plan.Reason = fmt.Sprintf("%s and %s differ too much to carry the plan over (compatibility %s, complexity gap %d)", from, to, compat, diff)
	case compat == models.Compatible && diff <= planAdaptiveComplexityDiff:
		plan.Strategy = models.StrategyAdaptive
		plan.ForceFresh = false
		plan.TransitionDays = 3
		plan.Reason = fmt.Sprintf("%s adapts smoothly into %s", from, to)
	default:
		plan.Strategy = models.StrategyGradualBlend
		plan.ForceFresh = false
		plan.TransitionDays = 7
		plan.Reason = fmt.Sprintf("%s blends into %s over a transition window", from, to)
	}

	fillPlanGuidance(&plan)
	return plan
}

// ShouldForceFresh is the gate the decision engine consults when the
// requested archetype differs from the last analyzed one. It forces a
// fresh analysis for incompatible pairs, large complexity jumps, and any
// switch once the cached analysis is older than the transition age gate.
func (t *transitionAssessor) ShouldForceFresh(from, to models.Archetype, lastAnalysisAge time.Duration) bool {
	if t.compat.Compat(from, to) == models.Incompatible {
		return true
	}
	if complexityDiff(from, to) > gateComplexityDiff {
		return true
	}
	return lastAnalysisAge.Hours()/24 > t.transitionAgeDays
}

// complexityDiff returns |complexity(from) - complexity(to)|. Unknown
// archetypes count as complexity 0, which biases the diff upward and so
// toward the safer fresh-start outcome.
func complexityDiff(from, to models.Archetype) int {
	fromProfile, _ := models.ProfileFor(from)
	toProfile, _ := models.ProfileFor(to)
	diff := fromProfile.Complexity - toProfile.Complexity
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// fillPlanGuidance attaches the timeline, guidance, and success metrics
// for the chosen strategy.
func fillPlanGuidance(plan *models.TransitionPlan) {
	toProfile, _ := models.ProfileFor(plan.To)

	switch plan.Strategy {
	case models.StrategyFreshStart:
		plan.Timeline = []string{
			"day 0: retire the current plan",
			"day 0: run a full behavioral analysis for the new archetype",
			"day 1: start the new plan at reduced intensity",
		}
		plan.Guidance = []string{
			fmt.Sprintf("expect a different rhythm: %s centers on %s", plan.To, toProfile.Focus),
			"treat the first week as calibration, not performance",
		}
		plan.SuccessMetrics = []string{
			"completed the first week without skipped days",
			"reported effort feels sustainable by day 7",
		}
	case models.StrategyAdaptive:
		plan.Timeline = []string{
			fmt.Sprintf("days 1-%d: adjust existing routines toward %s", plan.TransitionDays, toProfile.Focus),
		}
		plan.Guidance = []string{
			"keep current habits; only the emphasis shifts",
		}
		plan.SuccessMetrics = []string{
			"existing streaks unbroken through the transition",
		}
	case models.StrategyGradualBlend:
		plan.Timeline = []string{
			fmt.Sprintf("days 1-3: keep the current plan, add one %s session", plan.To),
			fmt.Sprintf("days 4-%d: shift the weekly balance toward %s", plan.TransitionDays, toProfile.Focus),
		}
		plan.Guidance = []string{
			"swap sessions one at a time rather than all at once",
			fmt.Sprintf("target daily time moves toward %d minutes", toProfile.DailyTimeMinutes),
		}
		plan.SuccessMetrics = []string{
			fmt.Sprintf("at least half of sessions follow the %s plan by day %d", plan.To, plan.TransitionDays),
		}
	}
}
