package core

import (
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// Threshold bounds. Every computed threshold lands inside this range.
const (
	MinThreshold = 10
	MaxThreshold = 100
)

// ThresholdCalculator turns memory quality, archetype complexity, and
// elapsed time into the minimum count of new data points that justifies a
// fresh analysis. It is pure and side-effect free.
type ThresholdCalculator interface {
	Threshold(quality models.MemoryQuality, archetype models.Archetype, daysSinceAnalysis float64, base int) int
}

type thresholdCalculator struct{}

// NewThresholdCalculator returns the standard threshold calculator.
func NewThresholdCalculator() ThresholdCalculator {
	return thresholdCalculator{}
}

// Threshold applies three multiplicative adjustments to base, in order:
// memory quality, archetype complexity, and time decay. The result is
// truncated to an integer and clamped to [MinThreshold, MaxThreshold].
//
// Richer memory lowers the threshold (less new data justifies a rerun),
// complex archetypes raise it slightly, and an aging analysis lowers it so
// the cache does not outstay its usefulness.
func (thresholdCalculator) Threshold(quality models.MemoryQuality, archetype models.Archetype, daysSinceAnalysis float64, base int) int {
	threshold := float64(base)

	switch quality {
	case models.MemoryRich:
		threshold *= 0.7
	case models.MemoryDeveloping:
		threshold *= 0.85
	case models.MemorySparse:
		threshold *= 1.2
	}

	if profile, ok := models.ProfileFor(archetype); ok {
		switch {
		case profile.Complexity >= 8:
			threshold *= 1.15
		case profile.Complexity <= 4:
			threshold *= 0.9
		}
	}

	switch {
	case daysSinceAnalysis >= 5:
		threshold *= 0.7
	case daysSinceAnalysis >= 3:
		threshold *= 0.85
	}

	result := int(threshold)
	if result < MinThreshold {
		return MinThreshold
	}
	if result > MaxThreshold {
		return MaxThreshold
	}
	return result
}
