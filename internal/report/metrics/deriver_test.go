package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdanta/verdanta/internal/model"
)

func newTestDeriver() *Deriver {
	return NewDeriver(DefaultLifecyclePolicy())
}

func TestDerivePerUnitFigures(t *testing.T) {
	d := newTestDeriver()

	lca := model.LCAResult{
		TotalCarbonTonnes: 803.1,
		TotalWaterLiters:  4500000,
		TotalWasteTonnes:  12.6,
	}
	products := []model.Product{
		{Name: "Sparkling Water 500ml", IsPrimary: true, AnnualProductionVolume: 600000},
	}

	out := d.Derive(lca, products)

	assert.Equal(t, float64(600000), out.EffectiveVolume)
	assert.Equal(t, "1.339", out.CarbonPerUnit)
	assert.Equal(t, "7.5", out.WaterPerUnit)
	assert.Equal(t, "0.0210", out.WastePerUnit)
	assert.InDelta(t, 1.3385, out.CarbonPerUnitKg, 0.0001)
}

func TestDeriveEffectiveVolume(t *testing.T) {
	tests := []struct {
		name     string
		products []model.Product
		want     float64
	}{
		{
			name:     "no products floors to one",
			products: nil,
			want:     1,
		},
		{
			name: "zero volume floors to one",
			products: []model.Product{
				{IsPrimary: true, AnnualProductionVolume: 0},
			},
			want: 1,
		},
		{
			name: "fractional volume floors to one",
			products: []model.Product{
				{IsPrimary: true, AnnualProductionVolume: 0.4},
			},
			want: 1,
		},
		{
			name: "primary product wins over first",
			products: []model.Product{
				{AnnualProductionVolume: 100},
				{IsPrimary: true, AnnualProductionVolume: 250000},
			},
			want: 250000,
		},
		{
			name: "first product stands in without a primary flag",
			products: []model.Product{
				{AnnualProductionVolume: 42000},
				{AnnualProductionVolume: 99000},
			},
			want: 42000,
		},
		{
			name: "zero-volume primary does not borrow a sibling volume",
			products: []model.Product{
				{IsPrimary: true, AnnualProductionVolume: 0},
				{AnnualProductionVolume: 500},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestDeriver().Derive(model.LCAResult{TotalCarbonTonnes: 1}, tt.products)
			assert.Equal(t, tt.want, out.EffectiveVolume)
		})
	}
}

func TestDeriveUncomputableFiguresDisplayNA(t *testing.T) {
	d := newTestDeriver()

	lca := model.LCAResult{
		TotalCarbonTonnes: math.NaN(),
		TotalWaterLiters:  math.Inf(1),
		TotalWasteTonnes:  5,
	}
	out := d.Derive(lca, []model.Product{{IsPrimary: true, AnnualProductionVolume: 1000}})

	assert.Equal(t, NotAvailable, out.CarbonPerUnit)
	assert.Equal(t, NotAvailable, out.WaterPerUnit)
	assert.Equal(t, "5.0000", out.WastePerUnit)
}

func TestReconcileLifecycleDefaults(t *testing.T) {
	// Without any breakdown, the policy split applies. The raw end-of-life
	// remainder of 1 is clamped up to 2 and the dominant stage absorbs the
	// difference so the total stays exactly 100.
	out := newTestDeriver().Derive(model.LCAResult{}, []model.Product{
		{IsPrimary: true, AnnualProductionVolume: 1000},
	})

	lc := out.Lifecycle
	assert.Equal(t, 48, lc.IngredientsPct)
	assert.Equal(t, 10, lc.PackagingPct)
	assert.Equal(t, 40, lc.FacilitiesPct)
	assert.Equal(t, 2, lc.EndOfLifePct)
	assert.Equal(t, 100, lc.IngredientsPct+lc.PackagingPct+lc.FacilitiesPct+lc.EndOfLifePct)
	assert.Equal(t, StageIngredients, lc.Hotspot)
	assert.Equal(t, "sustainable sourcing", lc.ReductionOpportunity)
}

func TestReconcileLifecycleFromBreakdown(t *testing.T) {
	tests := []struct {
		name      string
		breakdown model.StageBreakdown
		wantIng   int
		wantPack  int
		wantFac   int
		wantEOL   int
		wantStage Stage
	}{
		{
			name:      "remainder inside the window survives",
			breakdown: model.StageBreakdown{IngredientsPct: 30, PackagingPct: 45, FacilitiesPct: 20},
			wantIng:   30, wantPack: 45, wantFac: 20, wantEOL: 5,
			wantStage: StagePackaging,
		},
		{
			name:      "oversized remainder clamps down and hotspot absorbs",
			breakdown: model.StageBreakdown{IngredientsPct: 50, PackagingPct: 20, FacilitiesPct: 20},
			wantIng:   55, wantPack: 20, wantFac: 20, wantEOL: 5,
			wantStage: StageIngredients,
		},
		{
			name:      "negative remainder clamps up and hotspot shrinks",
			breakdown: model.StageBreakdown{IngredientsPct: 40, PackagingPct: 20, FacilitiesPct: 40},
			wantIng:   38, wantPack: 20, wantFac: 40, wantEOL: 2,
			wantStage: StageFacilities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.breakdown
			out := newTestDeriver().Derive(model.LCAResult{}, []model.Product{
				{IsPrimary: true, AnnualProductionVolume: 1000, Breakdown: &b},
			})

			lc := out.Lifecycle
			assert.Equal(t, tt.wantIng, lc.IngredientsPct)
			assert.Equal(t, tt.wantPack, lc.PackagingPct)
			assert.Equal(t, tt.wantFac, lc.FacilitiesPct)
			assert.Equal(t, tt.wantEOL, lc.EndOfLifePct)
			assert.Equal(t, 100,
				lc.IngredientsPct+lc.PackagingPct+lc.FacilitiesPct+lc.EndOfLifePct)
			assert.Equal(t, tt.wantStage, lc.Hotspot)
		})
	}
}

func TestReconcileLifecycleAveragesSiblingBreakdowns(t *testing.T) {
	// The primary carries no breakdown, so the reconciliation averages the
	// breakdowns of the products that do carry one.
	products := []model.Product{
		{IsPrimary: true, AnnualProductionVolume: 1000},
		{Breakdown: &model.StageBreakdown{IngredientsPct: 60, PackagingPct: 10, FacilitiesPct: 25}},
		{Breakdown: &model.StageBreakdown{IngredientsPct: 40, PackagingPct: 20, FacilitiesPct: 35}},
	}

	out := newTestDeriver().Derive(model.LCAResult{}, products)

	lc := out.Lifecycle
	assert.Equal(t, 50, lc.IngredientsPct)
	assert.Equal(t, 15, lc.PackagingPct)
	assert.Equal(t, 30, lc.FacilitiesPct)
	assert.Equal(t, 5, lc.EndOfLifePct)
	assert.Equal(t, StageIngredients, lc.Hotspot)
}

func TestClampEndOfLife(t *testing.T) {
	p := DefaultLifecyclePolicy()

	require.Equal(t, 2, p.ClampEndOfLife(-10))
	require.Equal(t, 2, p.ClampEndOfLife(1))
	require.Equal(t, 3, p.ClampEndOfLife(3))
	require.Equal(t, 5, p.ClampEndOfLife(5))
	require.Equal(t, 5, p.ClampEndOfLife(20))
}

func TestReductionOpportunityPairing(t *testing.T) {
	assert.Equal(t, "sustainable sourcing", ReductionOpportunity(StageIngredients))
	assert.Equal(t, "packaging optimization", ReductionOpportunity(StagePackaging))
	assert.Equal(t, "renewable energy", ReductionOpportunity(StageFacilities))
}
