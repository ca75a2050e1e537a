package metrics

// Stage identifies one lifecycle stage of a product.
type Stage string

const (
	StageIngredients Stage = "ingredients"
	StagePackaging   Stage = "packaging"
	StageFacilities  Stage = "facilities"
	StageEndOfLife   Stage = "end_of_life"
)

// LifecyclePolicy is the named business rule governing lifecycle percentage
// reconciliation. The end-of-life clamp is a plausibility window applied to
// the computed remainder, not a derived quantity; keeping it here makes its
// provenance auditable instead of burying it as an inline magic number.
type LifecyclePolicy struct {
	// DefaultIngredientsPct/DefaultPackagingPct/DefaultFacilitiesPct are the
	// fallback stage percentages used when no product carries a breakdown.
	DefaultIngredientsPct float64
	DefaultPackagingPct   float64
	DefaultFacilitiesPct  float64

	// MinEndOfLifePct and MaxEndOfLifePct bound the end-of-life remainder.
	MinEndOfLifePct int
	MaxEndOfLifePct int
}

// DefaultLifecyclePolicy returns the standard reconciliation policy:
// 49/10/40 fallback split and an end-of-life window of [2, 5] percent.
func DefaultLifecyclePolicy() LifecyclePolicy {
	return LifecyclePolicy{
		DefaultIngredientsPct: 49,
		DefaultPackagingPct:   10,
		DefaultFacilitiesPct:  40,
		MinEndOfLifePct:       2,
		MaxEndOfLifePct:       5,
	}
}

// ClampEndOfLife applies the plausibility window to a raw remainder.
func (p LifecyclePolicy) ClampEndOfLife(raw int) int {
	if raw < p.MinEndOfLifePct {
		return p.MinEndOfLifePct
	}
	if raw > p.MaxEndOfLifePct {
		return p.MaxEndOfLifePct
	}
	return raw
}

// reductionOpportunities maps the dominant lifecycle stage to its paired
// reduction opportunity.
var reductionOpportunities = map[Stage]string{
	StageIngredients: "sustainable sourcing",
	StagePackaging:   "packaging optimization",
	StageFacilities:  "renewable energy",
}

// ReductionOpportunity returns the recommended reduction lever for a hotspot.
func ReductionOpportunity(hotspot Stage) string {
	return reductionOpportunities[hotspot]
}
