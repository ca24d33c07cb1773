package core

import (
	"testing"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

func TestThresholdExactValues(t *testing.T) {
	calc := NewThresholdCalculator()

	tests := []struct {
		name      string
		quality   models.MemoryQuality
		archetype models.Archetype
		days      float64
		base      int
		want      int
	}{
		// 50 * 0.7 = 35
		{"rich mid-complexity fresh", models.MemoryRich, models.SocialEnergizer, 1, 50, 35},
		// 50 * 0.85 = 42.5 -> 42
		{"developing mid-complexity fresh", models.MemoryDeveloping, models.SocialEnergizer, 1, 50, 42},
		// 50 * 1.2 = 60
		{"sparse mid-complexity fresh", models.MemorySparse, models.SocialEnergizer, 1, 50, 60},
		// 50 * 1.2 * 1.15 = 69
		{"sparse high-complexity fresh", models.MemorySparse, models.PeakPerformer, 1, 50, 69},
		// 50 * 1.2 * 0.9 = 54
		{"sparse low-complexity fresh", models.MemorySparse, models.FoundationBuilder, 1, 50, 54},
		// 50 * 0.7 * 0.9 * 0.7 = 22.05 -> 22
		{"rich low-complexity aged", models.MemoryRich, models.FoundationBuilder, 5, 50, 22},
		// 50 * 0.7 * 0.85 = 29.75 -> 29
		{"rich mid-complexity three days", models.MemoryRich, models.SocialEnergizer, 3, 50, 29},
		// 10 * 0.7 * 0.9 * 0.7 = 4.41 -> clamped to 10
		{"clamped to minimum", models.MemoryRich, models.FoundationBuilder, 6, 10, 10},
		// 100 * 1.2 * 1.15 = 138 -> clamped to 100
		{"clamped to maximum", models.MemorySparse, models.PeakPerformer, 0, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Threshold(tt.quality, tt.archetype, tt.days, tt.base)
			if got != tt.want {
				t.Errorf("Threshold(%s, %s, %g, %d) = %d, want %d",
					tt.quality, tt.archetype, tt.days, tt.base, got, tt.want)
			}
		})
	}
}

func TestThresholdUnknownArchetypeSkipsComplexityFactor(t *testing.T) {
	calc := NewThresholdCalculator()

	// 50 * 1.2 = 60: no complexity adjustment for an unknown archetype.
	got := calc.Threshold(models.MemorySparse, "Zen Master", 1, 50)
	if got != 60 {
		t.Errorf("Threshold with unknown archetype = %d, want 60", got)
	}
}

func TestThresholdEmptyArchetype(t *testing.T) {
	calc := NewThresholdCalculator()

	// 50 * 0.85 = 42.5 -> 42
	got := calc.Threshold(models.MemoryDeveloping, "", 0, 50)
	if got != 42 {
		t.Errorf("Threshold with empty archetype = %d, want 42", got)
	}
}

func TestThresholdDecayBoundaries(t *testing.T) {
	calc := NewThresholdCalculator()

	// Just under three days: no decay. 50 * 1.2 = 60.
	if got := calc.Threshold(models.MemorySparse, models.SocialEnergizer, 2.99, 50); got != 60 {
		t.Errorf("Threshold at 2.99 days = %d, want 60", got)
	}
	// Exactly three days: 0.85 decay. 50 * 1.2 * 0.85 = 51.
	if got := calc.Threshold(models.MemorySparse, models.SocialEnergizer, 3, 50); got != 51 {
		t.Errorf("Threshold at 3 days = %d, want 51", got)
	}
	// Exactly five days: 0.7 decay. 50 * 1.2 * 0.7 = 42.
	if got := calc.Threshold(models.MemorySparse, models.SocialEnergizer, 5, 50); got != 42 {
		t.Errorf("Threshold at 5 days = %d, want 42", got)
	}
}
