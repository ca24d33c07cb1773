package models

import (
	"fmt"
	"strings"
)

// Archetype is a fixed behavioral-profile category assigned to a user.
// The six archetypes are defined at process start and never created or
// destroyed at runtime.
type Archetype string

const (
	FoundationBuilder   Archetype = "Foundation Builder"
	ResilienceRebuilder Archetype = "Resilience Rebuilder"
	SocialEnergizer     Archetype = "Social Energizer"
	SystematicImprover  Archetype = "Systematic Improver"
	MindfulOptimizer    Archetype = "Mindful Optimizer"
	PeakPerformer       Archetype = "Peak Performer"
)

// ArchetypeProfile holds the static attributes of an archetype that drive
// plan style and threshold scoring.
type ArchetypeProfile struct {
	Archetype        Archetype `yaml:"archetype" json:"archetype"`
	DailyTimeMinutes int       `yaml:"daily_time_minutes" json:"daily_time_minutes"`
	Complexity       int       `yaml:"complexity" json:"complexity"` // 1-10
	Focus            string    `yaml:"focus" json:"focus"`
}

// archetypeProfiles is the read-only profile table, one entry per archetype.
var archetypeProfiles = map[Archetype]ArchetypeProfile{
	FoundationBuilder: {
		Archetype:        FoundationBuilder,
		DailyTimeMinutes: 20,
		Complexity:       3,
		Focus:            "habit foundations",
	},
	ResilienceRebuilder: {
		Archetype:        ResilienceRebuilder,
		DailyTimeMinutes: 30,
		Complexity:       4,
		Focus:            "recovery and stress regulation",
	},
	SocialEnergizer: {
		Archetype:        SocialEnergizer,
		DailyTimeMinutes: 40,
		Complexity:       5,
		Focus:            "community-driven movement",
	},
	SystematicImprover: {
		Archetype:        SystematicImprover,
		DailyTimeMinutes: 45,
		Complexity:       6,
		Focus:            "structured progression",
	},
	MindfulOptimizer: {
		Archetype:        MindfulOptimizer,
		DailyTimeMinutes: 60,
		Complexity:       7,
		Focus:            "awareness-led optimization",
	},
	PeakPerformer: {
		Archetype:        PeakPerformer,
		DailyTimeMinutes: 90,
		Complexity:       9,
		Focus:            "high-performance training",
	},
}

// AllArchetypes returns the six archetypes in ascending complexity order.
func AllArchetypes() []Archetype {
	return []Archetype{
		FoundationBuilder,
		ResilienceRebuilder,
		SocialEnergizer,
		SystematicImprover,
		MindfulOptimizer,
		PeakPerformer,
	}
}

// ProfileFor looks up the profile for an archetype. The second return value
// is false for unknown archetypes; callers treat unknown as worst case
// rather than failing.
func ProfileFor(a Archetype) (ArchetypeProfile, bool) {
	p, ok := archetypeProfiles[a]
	return p, ok
}

// IsValid reports whether a is one of the six defined archetypes.
func (a Archetype) IsValid() bool {
	_, ok := archetypeProfiles[a]
	return ok
}

// ParseArchetype converts a user-supplied string into an Archetype,
// tolerating case differences and underscore/hyphen separators
// ("peak_performer", "Peak Performer", "peak-performer" all parse).
func ParseArchetype(s string) (Archetype, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")

	for a := range archetypeProfiles {
		if strings.ToLower(string(a)) == normalized {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown archetype %q", s)
}
