// Package gas decomposes the aggregate per-unit carbon figure into named
// greenhouse-gas contributions with GWP weighting, uncertainty ranges and
// benchmark comparison, and owns their final presentation formatting.
package gas

import (
	"math"

	"go.uber.org/zap"

	"github.com/verdanta/verdanta/internal/model"
	"github.com/verdanta/verdanta/pkg/logger"
)

// PerformanceLabel is the qualitative label for a benchmark percentile.
func PerformanceLabel(percentile float64) string {
	switch {
	case percentile >= 80:
		return "excellent"
	case percentile >= 60:
		return "above average"
	case percentile >= 40:
		return "average"
	default:
		return "below average"
	}
}

// Analysis is the analyzer's output: the gas list plus, in advanced mode,
// the quality/uncertainty/benchmark block. Presentation methods on this
// type produce the rendering-ready markup fragments.
type Analysis struct {
	Gases       []model.GasContribution
	TotalCO2eKg float64

	// Advanced reports whether the upstream phase-3 block was present.
	Advanced bool

	DataQualityScore      float64
	OverallUncertaintyPct float64
	ConfidenceLevelPct    float64
	IndustryComparison    model.IndustryComparison
	Compliance            model.ComplianceLevel
}

// Analyzer expands an aggregate carbon figure into per-gas contributions.
type Analyzer struct {
	table FactorTable
}

// NewAnalyzer creates an analyzer using the given emission factor table.
func NewAnalyzer(table FactorTable) *Analyzer {
	return &Analyzer{table: table}
}

// Analyze decomposes the per-unit carbon figure. When the advanced block is
// present its per-gas list is passed through verbatim; otherwise the factor
// table's fixed industry split is applied.
func (a *Analyzer) Analyze(carbonPerUnitKg float64, advanced *model.Phase3Analytics) Analysis {
	if advanced != nil {
		return a.analyzeAdvanced(advanced)
	}
	return a.analyzeBasic(carbonPerUnitKg)
}

// analyzeBasic applies the fixed industry split against the per-unit carbon
// figure. Mass for non-CO2 gases is back-calculated as co2e_share / gwp.
func (a *Analyzer) analyzeBasic(carbonPerUnitKg float64) Analysis {
	out := Analysis{Advanced: false}

	if math.IsNaN(carbonPerUnitKg) || math.IsInf(carbonPerUnitKg, 0) || carbonPerUnitKg <= 0 {
		logger.Debug("Gas analysis skipped: no usable per-unit carbon figure")
		return out
	}

	for _, f := range a.table.Factors {
		co2e := carbonPerUnitKg * f.CO2eShare
		if co2e < EpsilonCO2eKg {
			continue
		}
		out.Gases = append(out.Gases, model.GasContribution{
			GasName:         f.GasName,
			ChemicalFormula: f.ChemicalFormula,
			MassKg:          co2e / f.GWP,
			GWPFactor:       f.GWP,
			CO2eKg:          co2e,
			ContributionPct: f.CO2eShare * 100,
			DataQuality:     model.DataQualityEstimated,
		})
		out.TotalCO2eKg += co2e
	}

	logger.Debug("Basic-mode gas decomposition complete",
		zap.Float64("carbon_per_unit_kg", carbonPerUnitKg),
		zap.Int("gases", len(out.Gases)),
		zap.String("factor_table", a.table.Version),
	)
	return out
}

// analyzeAdvanced passes the supplied per-gas list through verbatim and
// surfaces the quality, uncertainty and benchmark fields.
func (a *Analyzer) analyzeAdvanced(p *model.Phase3Analytics) Analysis {
	out := Analysis{
		Advanced:              true,
		DataQualityScore:      p.DataQualityScore,
		OverallUncertaintyPct: p.OverallUncertaintyPct,
		ConfidenceLevelPct:    p.ConfidenceLevelPct,
		IndustryComparison:    p.IndustryComparison,
		Compliance:            p.Compliance,
	}

	for _, g := range p.Gases {
		if g.CO2eKg < EpsilonCO2eKg {
			continue
		}
		out.Gases = append(out.Gases, g)
		out.TotalCO2eKg += g.CO2eKg
	}

	logger.Debug("Advanced-mode gas pass-through complete",
		zap.Int("gases", len(out.Gases)),
		zap.Float64("data_quality_score", p.DataQualityScore),
	)
	return out
}
