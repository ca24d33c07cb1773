package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Memory quality scoring: each historical source contributes 0-4 points
// based on depth, the engagement context contributes 0 or 3, and the sum
// (max 11) buckets into the three tiers.
const (
	richScoreFloor       = 8
	developingScoreFloor = 4
	contextScore         = 3
)

// QualityAssessment is the result of one memory quality pass. Degraded
// lists lookups that failed and were scored as zero; it feeds the decision
// metadata and the event log but never changes the fact that a quality tier
// is always produced.
type QualityAssessment struct {
	Quality        models.MemoryQuality
	BehaviorScore  int
	CircadianScore int
	ContextScore   int
	Degraded       []string
}

// TotalScore is the sum of the three contributions.
func (q QualityAssessment) TotalScore() int {
	return q.BehaviorScore + q.CircadianScore + q.ContextScore
}

// MemoryQualityAssessor reduces a user's historical analysis depth to one
// of three quality tiers. Assess never fails: every lookup error degrades
// that source's contribution to zero, so total failure yields Sparse.
type MemoryQualityAssessor interface {
	Assess(ctx context.Context, userID string, archetype models.Archetype) QualityAssessment
}

type memoryQualityAssessor struct {
	depth      AnalysisDepthProvider
	engagement EngagementContextProvider
}

// NewMemoryQualityAssessor creates a MemoryQualityAssessor backed by the
// given read-only providers.
func NewMemoryQualityAssessor(depth AnalysisDepthProvider, engagement EngagementContextProvider) MemoryQualityAssessor {
	return &memoryQualityAssessor{
		depth:      depth,
		engagement: engagement,
	}
}

// Assess issues the three independent reads concurrently; they have no
// ordering dependency and a slow or failing one only loses its own
// contribution. Cancellation of ctx cancels the outstanding reads.
func (a *memoryQualityAssessor) Assess(ctx context.Context, userID string, archetype models.Archetype) QualityAssessment {
	var (
		result       QualityAssessment
		behaviorErr  error
		circadianErr error
		contextErr   error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := a.depth.CountPriorAnalyses(gctx, userID, AnalysisBehavior, string(archetype))
		if err != nil {
			behaviorErr = err
			return nil // degrade, never propagate
		}
		result.BehaviorScore = depthScore(count)
		return nil
	})

	g.Go(func() error {
		count, err := a.depth.CountPriorAnalyses(gctx, userID, AnalysisCircadian, string(archetype))
		if err != nil {
			circadianErr = err
			return nil
		}
		result.CircadianScore = depthScore(count)
		return nil
	})

	g.Go(func() error {
		has, err := a.engagement.HasRecentContext(gctx, userID)
		if err != nil {
			contextErr = err
			return nil
		}
		if has {
			result.ContextScore = contextScore
		}
		return nil
	})

	_ = g.Wait() // goroutines never return errors; failures degrade in place

	if behaviorErr != nil {
		result.Degraded = append(result.Degraded, fmt.Sprintf("behavior analysis count unavailable: %s", behaviorErr))
	}
	if circadianErr != nil {
		result.Degraded = append(result.Degraded, fmt.Sprintf("circadian analysis count unavailable: %s", circadianErr))
	}
	if contextErr != nil {
		result.Degraded = append(result.Degraded, fmt.Sprintf("engagement context unavailable: %s", contextErr))
	}

	result.Quality = bucketQuality(result.TotalScore())
	return result
}

// depthScore maps a prior-analysis count to its 0-4 contribution.
func depthScore(count int) int {
	switch {
	case count >= 5:
		return 4
	case count >= 3:
		return 3
	case count >= 1:
		return 2
	default:
		return 0
	}
}

// bucketQuality maps a total score (0-11) to a quality tier.
func bucketQuality(total int) models.MemoryQuality {
	switch {
	case total >= richScoreFloor:
		return models.MemoryRich
	case total >= developingScoreFloor:
		return models.MemoryDeveloping
	default:
		return models.MemorySparse
	}
}
