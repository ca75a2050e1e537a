// Package metrics derives display-ready per-unit figures from annual
// aggregate LCA totals and reconciles lifecycle-stage percentages.
package metrics

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/verdanta/verdanta/internal/model"
	"github.com/verdanta/verdanta/pkg/logger"
)

// NotAvailable is the display value substituted for any figure that cannot
// be computed. The deriver never returns an error.
const NotAvailable = "N/A"

// Lifecycle holds the reconciled stage percentages. The four stages always
// sum to exactly 100, with EndOfLifePct inside the policy window.
type Lifecycle struct {
	IngredientsPct int
	PackagingPct   int
	FacilitiesPct  int
	EndOfLifePct   int

	// Hotspot is the dominant stage among ingredients/packaging/facilities.
	Hotspot Stage

	// ReductionOpportunity is the recommended lever for the hotspot stage.
	ReductionOpportunity string
}

// Derived is the value object produced by the deriver: raw per-unit numbers
// for downstream computation plus pre-formatted display strings.
type Derived struct {
	// Raw per-unit values, NaN when not computable.
	CarbonPerUnitKg float64
	WaterPerUnitL   float64
	WastePerUnitKg  float64

	// EffectiveVolume is the divisor actually used (floored to 1).
	EffectiveVolume float64

	// Display strings: carbon 3 dp, water 1 dp, waste 4 dp, or "N/A".
	CarbonPerUnit string
	WaterPerUnit  string
	WastePerUnit  string

	Lifecycle Lifecycle
}

// Deriver converts annual aggregates into per-unit, display-ready figures.
type Deriver struct {
	policy LifecyclePolicy
}

// NewDeriver creates a deriver with the given lifecycle policy.
func NewDeriver(policy LifecyclePolicy) *Deriver {
	return &Deriver{policy: policy}
}

// Derive computes all per-unit figures and the lifecycle reconciliation for
// one report request. It never fails; uncomputable figures come back as "N/A".
func (d *Deriver) Derive(lca model.LCAResult, products []model.Product) Derived {
	volume := effectiveVolume(products)

	out := Derived{
		EffectiveVolume: volume,
		CarbonPerUnitKg: lca.TotalCarbonTonnes * 1000 / volume,
		WaterPerUnitL:   lca.TotalWaterLiters / volume,
		WastePerUnitKg:  lca.TotalWasteTonnes * 1000 / volume,
	}

	out.CarbonPerUnit = formatFixed(out.CarbonPerUnitKg, 3)
	out.WaterPerUnit = formatFixed(out.WaterPerUnitL, 1)
	out.WastePerUnit = formatFixed(out.WastePerUnitKg, 4)
	out.Lifecycle = d.reconcileLifecycle(products)

	logger.Debug("Derived per-unit metrics",
		zap.Float64("volume", volume),
		zap.String("carbon_per_unit", out.CarbonPerUnit),
		zap.String("hotspot", string(out.Lifecycle.Hotspot)),
	)

	return out
}

// effectiveVolume returns the primary product's annual production volume,
// floored to 1. The floor is a deliberate policy to avoid division faults,
// not a data-quality signal.
func effectiveVolume(products []model.Product) float64 {
	var volume float64
	for i := range products {
		if products[i].IsPrimary {
			volume = products[i].AnnualProductionVolume
			break
		}
	}
	if volume == 0 && len(products) > 0 && !products[0].IsPrimary {
		// No product flagged as primary; the first one stands in.
		volume = products[0].AnnualProductionVolume
	}
	if volume < 1 || math.IsNaN(volume) {
		return 1
	}
	return volume
}

// reconcileLifecycle resolves the stage percentages: the primary product's
// own breakdown wins, then the average across products carrying one, then
// the policy defaults.
func (d *Deriver) reconcileLifecycle(products []model.Product) Lifecycle {
	ing, pack, fac := d.stagePercentages(products)

	ingPct := int(math.Round(ing))
	packPct := int(math.Round(pack))
	facPct := int(math.Round(fac))

	raw := 100 - (ingPct + packPct + facPct)
	eol := d.policy.ClampEndOfLife(raw)

	lc := Lifecycle{
		IngredientsPct: ingPct,
		PackagingPct:   packPct,
		FacilitiesPct:  facPct,
		EndOfLifePct:   eol,
	}

	// The clamp can leave the four stages off 100; the dominant stage
	// absorbs the residual so the displayed total is always exact.
	lc.absorbResidual(100 - (ingPct + packPct + facPct + eol))

	lc.Hotspot = lc.hotspot()
	lc.ReductionOpportunity = ReductionOpportunity(lc.Hotspot)
	return lc
}

// stagePercentages returns the raw ingredients/packaging/facilities split.
func (d *Deriver) stagePercentages(products []model.Product) (ing, pack, fac float64) {
	for i := range products {
		if products[i].IsPrimary && products[i].Breakdown != nil {
			b := products[i].Breakdown
			return b.IngredientsPct, b.PackagingPct, b.FacilitiesPct
		}
	}

	var count int
	for i := range products {
		if b := products[i].Breakdown; b != nil {
			ing += b.IngredientsPct
			pack += b.PackagingPct
			fac += b.FacilitiesPct
			count++
		}
	}
	if count > 0 {
		n := float64(count)
		return ing / n, pack / n, fac / n
	}

	return d.policy.DefaultIngredientsPct, d.policy.DefaultPackagingPct, d.policy.DefaultFacilitiesPct
}

// absorbResidual adds the residual to the largest of the three main stages.
func (lc *Lifecycle) absorbResidual(residual int) {
	if residual == 0 {
		return
	}
	switch lc.hotspot() {
	case StagePackaging:
		lc.PackagingPct += residual
	case StageFacilities:
		lc.FacilitiesPct += residual
	default:
		lc.IngredientsPct += residual
	}
}

// hotspot returns the argmax of the three main stage percentages.
func (lc *Lifecycle) hotspot() Stage {
	max := lc.IngredientsPct
	stage := StageIngredients
	if lc.PackagingPct > max {
		max = lc.PackagingPct
		stage = StagePackaging
	}
	if lc.FacilitiesPct > max {
		stage = StageFacilities
	}
	return stage
}

// formatFixed renders a value to the given decimal precision, or "N/A" for
// values that cannot be displayed.
func formatFixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.*f", precision, v)
}
