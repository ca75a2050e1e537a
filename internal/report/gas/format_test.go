package gas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdanta/verdanta/internal/model"
)

func TestTableRowsHTMLEmptyState(t *testing.T) {
	rows := Analysis{}.TableRowsHTML()

	assert.Contains(t, rows, `colspan="6"`)
	assert.Contains(t, rows, "No gas-level data available")
}

func TestTableRowsHTML(t *testing.T) {
	a := Analysis{
		Gases: []model.GasContribution{
			{
				GasName:         "Carbon dioxide",
				ChemicalFormula: "CO₂",
				MassKg:          1.336,
				GWPFactor:       1,
				CO2eKg:          1.336,
				ContributionPct: 82,
				DataQuality:     model.DataQualityEstimated,
			},
			{
				GasName:         "Methane",
				ChemicalFormula: "CH₄",
				MassKg:          0.007,
				GWPFactor:       28,
				CO2eKg:          0.195,
				ContributionPct: 12,
				Uncertainty:     model.UncertaintyRange{MinKg: 0.18, MaxKg: 0.21, ConfidencePct: 95},
				DataQuality:     model.DataQualityMeasured,
			},
		},
	}

	rows := a.TableRowsHTML()

	assert.Equal(t, 2, strings.Count(rows, "<tr>"))
	assert.Contains(t, rows, "Carbon dioxide (CO₂)")
	assert.Contains(t, rows, "1.336 kg")
	assert.Contains(t, rows, "82%")
	assert.Contains(t, rows, "estimated")
	assert.Contains(t, rows, "0.180 – 0.210 kg (95%)")
}

func TestTotalCO2eDisplay(t *testing.T) {
	assert.Equal(t, "N/A", Analysis{}.TotalCO2eDisplay())

	a := Analysis{
		Gases:       []model.GasContribution{{CO2eKg: 1.629}},
		TotalCO2eKg: 1.629,
	}
	assert.Equal(t, "1.629 kg CO₂e", a.TotalCO2eDisplay())
}

func TestSummaryHTMLBasicMode(t *testing.T) {
	summary := Analysis{Advanced: false}.SummaryHTML()

	assert.Contains(t, summary, "industry-typical")
	assert.NotContains(t, summary, "Data quality score")
}

func TestSummaryHTMLAdvancedMode(t *testing.T) {
	a := Analysis{
		Advanced:              true,
		DataQualityScore:      87.5,
		OverallUncertaintyPct: 12.3,
		ConfidenceLevelPct:    95,
		IndustryComparison:    model.IndustryComparison{Percentile: 84, CategoryAvgKgCO2e: 1.9},
		Compliance:            model.ComplianceLevel{GHGProtocol: true},
	}

	summary := a.SummaryHTML()

	assert.Contains(t, summary, "87.5/100")
	assert.Contains(t, summary, "±12.3%")
	assert.Contains(t, summary, "excellent")
	assert.Contains(t, summary, "84th percentile")
	assert.Contains(t, summary, "GHG Protocol Product Standard: <strong>conformant</strong>")
	assert.Contains(t, summary, "ISO 14064-1: <strong>not assessed</strong>")
	assert.Contains(t, summary, "ISO 14067: <strong>not assessed</strong>")
}
