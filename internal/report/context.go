package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verdanta/verdanta/internal/model"
	"github.com/verdanta/verdanta/internal/report/embedder"
	"github.com/verdanta/verdanta/internal/report/gas"
	"github.com/verdanta/verdanta/internal/report/metrics"
	"github.com/verdanta/verdanta/internal/report/template"
)

// Image section identifiers recognized in ReportRequest.UploadedImages.
const (
	SectionProductImages  = "product"
	SectionFacilityImages = "facility"
	SectionCompanyLogo    = "logo"
)

// Neutral narrative defaults substituted when the request carries no text
// for a section.
const (
	defaultIntroNarrative = "This report summarizes the environmental performance of our products " +
		"for the most recent reporting period."
	defaultMethodologyNarrative = "Impact figures were calculated following life cycle assessment " +
		"methodology, covering ingredients, packaging, facility operations, and end of life."
	defaultClosingNarrative = "We continue to work with our suppliers and partners to reduce the " +
		"environmental footprint of every product we make."
)

// buildContext assembles the flat token map for template injection. Every
// token any template variant consults has an entry here; numeric values are
// pre-formatted by the producing components, never at injection time.
func buildContext(
	ctx context.Context,
	req *model.ReportRequest,
	derived metrics.Derived,
	analysis gas.Analysis,
	emb *embedder.Embedder,
	variant string,
	now time.Time,
) template.Context {
	primary := req.PrimaryProduct()

	productName := "our product"
	volume := metrics.NotAvailable
	if primary != nil {
		if primary.Name != "" {
			productName = primary.Name
		}
		volume = fmt.Sprintf("%.0f", derived.EffectiveVolume)
	}

	calculationDate := metrics.NotAvailable
	if !req.LCAResults.CalculatedAt.IsZero() {
		calculationDate = req.LCAResults.CalculatedAt.Format("2006-01-02")
	}

	title := req.ReportTitle
	if title == "" {
		title = defaultTitle(variant, req.Company.Name)
	}

	tctx := template.Context{
		"COMPANY_NAME":    orDefault(req.Company.Name, metrics.NotAvailable),
		"COMPANY_ADDRESS": orDefault(req.Company.Address, ""),
		"REPORT_TITLE":    title,
		"REPORT_DATE":     now.Format("2006-01-02"),
		"CALCULATION_DATE": calculationDate,

		"PRODUCT_NAME":             productName,
		"ANNUAL_PRODUCTION_VOLUME": volume,

		"CARBON_PER_UNIT": derived.CarbonPerUnit,
		"WATER_PER_UNIT":  derived.WaterPerUnit,
		"WASTE_PER_UNIT":  derived.WastePerUnit,

		"TOTAL_CARBON_TONNES": formatTotal(req.LCAResults.TotalCarbonTonnes, 1),
		"TOTAL_WATER_LITERS":  formatTotal(req.LCAResults.TotalWaterLiters, 0),
		"TOTAL_WASTE_TONNES":  formatTotal(req.LCAResults.TotalWasteTonnes, 1),

		"INGREDIENTS_PCT": fmt.Sprintf("%d", derived.Lifecycle.IngredientsPct),
		"PACKAGING_PCT":   fmt.Sprintf("%d", derived.Lifecycle.PackagingPct),
		"FACILITIES_PCT":  fmt.Sprintf("%d", derived.Lifecycle.FacilitiesPct),
		"END_OF_LIFE_PCT": fmt.Sprintf("%d", derived.Lifecycle.EndOfLifePct),

		"HOTSPOT_STAGE":         hotspotDisplay(derived.Lifecycle.Hotspot),
		"REDUCTION_OPPORTUNITY": derived.Lifecycle.ReductionOpportunity,

		"GAS_TABLE_ROWS": analysis.TableRowsHTML(),
		"GAS_SUMMARY":    analysis.SummaryHTML(),
		"TOTAL_CO2E":     analysis.TotalCO2eDisplay(),

		"PACKAGING_ROWS": packagingRows(primary),

		"PRODUCT_IMAGES":  emb.EmbedSection(ctx, req.UploadedImages[SectionProductImages], "Product"),
		"FACILITY_IMAGES": emb.EmbedSection(ctx, req.UploadedImages[SectionFacilityImages], "Facility"),
		"COMPANY_LOGO":    logoFragment(ctx, emb, req.UploadedImages[SectionCompanyLogo]),

		"INTRO_NARRATIVE":       narrative(req, "intro", defaultIntroNarrative),
		"METHODOLOGY_NARRATIVE": narrative(req, "methodology", defaultMethodologyNarrative),
		"CLOSING_NARRATIVE":     narrative(req, "closing", defaultClosingNarrative),
	}

	return tctx
}

// defaultTitle derives a human-readable report title from the variant.
func defaultTitle(variant, companyName string) string {
	var kind string
	switch variant {
	case template.VariantLCA:
		kind = "Life Cycle Assessment Report"
	case template.VariantCarbonFocused:
		kind = "Carbon Footprint Report"
	case template.VariantCompliance:
		kind = "Compliance Report"
	case template.VariantStakeholder:
		kind = "Sustainability Highlights"
	default:
		kind = "Sustainability Report"
	}
	if companyName == "" {
		return kind
	}
	return companyName + " " + kind
}

// hotspotDisplay renders a lifecycle stage identifier for display.
func hotspotDisplay(stage metrics.Stage) string {
	switch stage {
	case metrics.StageIngredients:
		return "ingredient sourcing"
	case metrics.StagePackaging:
		return "packaging"
	case metrics.StageFacilities:
		return "facility operations"
	default:
		return string(stage)
	}
}

// packagingRows renders the primary product's packaging components as
// table rows, or a single placeholder row when no data is present.
func packagingRows(primary *model.Product) string {
	if primary == nil || len(primary.Packaging) == 0 {
		return `<tr><td colspan="4" class="empty">No packaging data available</td></tr>`
	}
	var sb strings.Builder
	for _, c := range primary.Packaging {
		sb.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%.1f g</td><td>%.0f%%</td></tr>\n",
			escapeHTML(string(c.Kind)), escapeHTML(c.Material), c.WeightGrams, c.RecycledContent,
		))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// logoFragment resolves the first logo reference into an inline image, or
// an empty fragment when the slot is unused.
func logoFragment(ctx context.Context, emb *embedder.Embedder, refs []string) string {
	if len(refs) == 0 {
		return ""
	}
	return `<img class="report-image" src="` + emb.Embed(ctx, refs[0]) + `" alt="Company logo"/>`
}

// narrative returns the request's narrative block for a section, or the
// neutral default sentence.
func narrative(req *model.ReportRequest, section, fallback string) string {
	if text, ok := req.Narratives[section]; ok && strings.TrimSpace(text) != "" {
		return escapeHTML(text)
	}
	return fallback
}

// formatTotal renders an annual total, or "N/A" for unusable values.
func formatTotal(v float64, precision int) string {
	if v != v || v < 0 { // NaN or negative
		return metrics.NotAvailable
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// orDefault returns s, or the fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// escapeHTML escapes a string for safe HTML embedding
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
