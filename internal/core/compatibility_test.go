package core

import (
	"testing"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

func TestCompatSelfIsCompatible(t *testing.T) {
	m := NewCompatibilityModel()
	for _, a := range models.AllArchetypes() {
		if got := m.Compat(a, a); got != models.Compatible {
			t.Errorf("Compat(%s, %s) = %s, want compatible", a, a, got)
		}
	}
}

func TestCompatEveryPairClassified(t *testing.T) {
	m := NewCompatibilityModel()
	valid := map[models.Compatibility]bool{
		models.Compatible:     true,
		models.SemiCompatible: true,
		models.Incompatible:   true,
	}
	for _, from := range models.AllArchetypes() {
		for _, to := range models.AllArchetypes() {
			got := m.Compat(from, to)
			if !valid[got] {
				t.Errorf("Compat(%s, %s) = %q, not a defined compatibility class", from, to, got)
			}
		}
	}
}

func TestCompatKnownPairs(t *testing.T) {
	m := NewCompatibilityModel()
	tests := []struct {
		from, to models.Archetype
		want     models.Compatibility
	}{
		{models.FoundationBuilder, models.PeakPerformer, models.Incompatible},
		{models.PeakPerformer, models.FoundationBuilder, models.Incompatible},
		{models.FoundationBuilder, models.ResilienceRebuilder, models.Compatible},
		{models.FoundationBuilder, models.SystematicImprover, models.SemiCompatible},
		{models.MindfulOptimizer, models.PeakPerformer, models.Compatible},
		{models.SocialEnergizer, models.MindfulOptimizer, models.Incompatible},
	}
	for _, tt := range tests {
		if got := m.Compat(tt.from, tt.to); got != tt.want {
			t.Errorf("Compat(%s, %s) = %s, want %s", tt.from, tt.to, got, tt.want)
		}
	}
}

// The table is directional: a pair may be rated differently in each
// direction, and the model must report what the table says rather than
// mirroring one side.
func TestCompatDirectionalAsymmetry(t *testing.T) {
	m := NewCompatibilityModel()

	if got := m.Compat(models.ResilienceRebuilder, models.MindfulOptimizer); got != models.Compatible {
		t.Errorf("Compat(RR, MO) = %s, want compatible", got)
	}
	if got := m.Compat(models.MindfulOptimizer, models.ResilienceRebuilder); got != models.SemiCompatible {
		t.Errorf("Compat(MO, RR) = %s, want semi_compatible", got)
	}
}

func TestCompatUnknownArchetypeIsIncompatible(t *testing.T) {
	m := NewCompatibilityModel()

	if got := m.Compat("Zen Master", models.FoundationBuilder); got != models.Incompatible {
		t.Errorf("Compat(unknown, FB) = %s, want incompatible", got)
	}
	if got := m.Compat(models.FoundationBuilder, "Zen Master"); got != models.Incompatible {
		t.Errorf("Compat(FB, unknown) = %s, want incompatible", got)
	}
}
