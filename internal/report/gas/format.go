package gas

import (
	"fmt"
	"strings"
)

// escapeHTML escapes a string for safe HTML embedding
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// TableRowsHTML renders the per-gas contribution list as table rows ready
// for injection into a template's gas-breakdown table.
func (a Analysis) TableRowsHTML() string {
	if len(a.Gases) == 0 {
		return `<tr><td colspan="6" class="empty">No gas-level data available</td></tr>`
	}

	var sb strings.Builder
	for _, g := range a.Gases {
		uncertainty := "–"
		if g.Uncertainty.MaxKg > 0 {
			uncertainty = fmt.Sprintf("%.3f – %.3f kg (%.0f%%)",
				g.Uncertainty.MinKg, g.Uncertainty.MaxKg, g.Uncertainty.ConfidencePct)
		}
		quality := string(g.DataQuality)
		if quality == "" {
			quality = "–"
		}
		sb.WriteString(fmt.Sprintf(
			"<tr><td>%s (%s)</td><td>%.3f kg</td><td>%.0f</td><td>%.3f kg</td><td>%.0f%%</td><td>%s</td></tr>\n",
			escapeHTML(g.GasName), escapeHTML(g.ChemicalFormula),
			g.MassKg, g.GWPFactor, g.CO2eKg, g.ContributionPct,
			escapeHTML(quality+" · "+uncertainty),
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TotalCO2eDisplay renders the displayed total, which equals the sum of the
// displayed per-gas CO2e values within rounding tolerance.
func (a Analysis) TotalCO2eDisplay() string {
	if len(a.Gases) == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.3f kg CO₂e", a.TotalCO2eKg)
}

// SummaryHTML renders the compliance and benchmark summary block. In basic
// mode the block states that advanced analytics were not supplied.
func (a Analysis) SummaryHTML() string {
	if !a.Advanced {
		return `<p class="gas-summary">Gas-level contributions are derived from an industry-typical ` +
			`split of the product's carbon footprint. Supplier-specific gas measurements were not ` +
			`available for this reporting period.</p>`
	}

	var sb strings.Builder
	sb.WriteString(`<div class="gas-summary">`)
	sb.WriteString(fmt.Sprintf(
		`<p>Data quality score: <strong>%.1f/100</strong> · Overall uncertainty: ±%.1f%% at %.0f%% confidence.</p>`,
		a.DataQualityScore, a.OverallUncertaintyPct, a.ConfidenceLevelPct))
	sb.WriteString(fmt.Sprintf(
		`<p>Industry benchmark: <strong>%s</strong> (%.0fth percentile, category average %.3f kg CO₂e per unit).</p>`,
		PerformanceLabel(a.IndustryComparison.Percentile),
		a.IndustryComparison.Percentile, a.IndustryComparison.CategoryAvgKgCO2e))
	sb.WriteString("<ul>")
	sb.WriteString(complianceItem("GHG Protocol Product Standard", a.Compliance.GHGProtocol))
	sb.WriteString(complianceItem("ISO 14064-1", a.Compliance.ISO14064))
	sb.WriteString(complianceItem("ISO 14067", a.Compliance.ISO14067))
	sb.WriteString("</ul></div>")
	return sb.String()
}

func complianceItem(name string, ok bool) string {
	status := "not assessed"
	if ok {
		status = "conformant"
	}
	return fmt.Sprintf("<li>%s: <strong>%s</strong></li>", name, status)
}
