// Package core contains the decision logic of Wellness Brain: archetype
// compatibility, memory quality assessment, dynamic data thresholds,
// archetype transition assessment, and the freshness decision engine that
// combines them.
package core

import (
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// CompatibilityModel answers how well one archetype's cached analysis
// carries over to another. Lookups are pure reads over static data and
// never fail: any pair the table does not define is Incompatible.
type CompatibilityModel interface {
	Compat(from, to models.Archetype) models.Compatibility
}

// compatibilityRow lists, for one source archetype, the target archetypes
// in each compatibility class. The three sets are disjoint.
type compatibilityRow struct {
	compatible     []models.Archetype
	semiCompatible []models.Archetype
	incompatible   []models.Archetype
}

// compatibilityTable is directional: row A's view of B is authored
// independently of row B's view of A. The asymmetries below are
// deliberate and preserved as authored; callers must never assume
// Compat(a, b) == Compat(b, a).
var compatibilityTable = map[models.Archetype]compatibilityRow{
	models.FoundationBuilder: {
		compatible:     []models.Archetype{models.ResilienceRebuilder, models.SocialEnergizer},
		semiCompatible: []models.Archetype{models.SystematicImprover},
		incompatible:   []models.Archetype{models.PeakPerformer, models.MindfulOptimizer},
	},
	models.ResilienceRebuilder: {
		compatible:     []models.Archetype{models.FoundationBuilder, models.MindfulOptimizer},
		semiCompatible: []models.Archetype{models.SocialEnergizer},
		incompatible:   []models.Archetype{models.PeakPerformer, models.SystematicImprover},
	},
	models.SocialEnergizer: {
		compatible:     []models.Archetype{models.FoundationBuilder},
		semiCompatible: []models.Archetype{models.SystematicImprover, models.ResilienceRebuilder, models.PeakPerformer},
		incompatible:   []models.Archetype{models.MindfulOptimizer},
	},
	models.SystematicImprover: {
		compatible:     []models.Archetype{models.FoundationBuilder, models.MindfulOptimizer},
		semiCompatible: []models.Archetype{models.PeakPerformer, models.SocialEnergizer},
		incompatible:   []models.Archetype{models.ResilienceRebuilder},
	},
	models.MindfulOptimizer: {
		compatible:     []models.Archetype{models.PeakPerformer, models.SystematicImprover},
		semiCompatible: []models.Archetype{models.ResilienceRebuilder},
		incompatible:   []models.Archetype{models.FoundationBuilder, models.SocialEnergizer},
	},
	models.PeakPerformer: {
		compatible:     []models.Archetype{models.MindfulOptimizer},
		semiCompatible: []models.Archetype{models.SystematicImprover, models.SocialEnergizer},
		incompatible:   []models.Archetype{models.FoundationBuilder, models.ResilienceRebuilder},
	},
}

// staticCompatibilityModel implements CompatibilityModel over the table above.
type staticCompatibilityModel struct{}

// NewCompatibilityModel returns the static archetype compatibility model.
func NewCompatibilityModel() CompatibilityModel {
	return staticCompatibilityModel{}
}

// Compat looks up the directional compatibility of from -> to. Unknown
// archetypes and undefined pairs are treated as the worst case,
// Incompatible, rather than an error.
func (staticCompatibilityModel) Compat(from, to models.Archetype) models.Compatibility {
	if from == to {
		return models.Compatible
	}

	row, ok := compatibilityTable[from]
	if !ok {
		return models.Incompatible
	}

	for _, a := range row.compatible {
		if a == to {
			return models.Compatible
		}
	}
	for _, a := range row.semiCompatible {
		if a == to {
			return models.SemiCompatible
		}
	}
	return models.Incompatible
}
