// Package model defines the data model for the report generation engine.
// All entities are constructed fresh per generation call; nothing is cached
// or mutated across calls.
package model

import (
	"time"
)

// ReportRequest is the aggregate input for one report generation call.
// It is treated as immutable for the duration of the call.
type ReportRequest struct {
	Company           Company             `json:"company"`
	Products          []Product           `json:"products"`
	LCAResults        LCAResult           `json:"lcaResults"`
	AggregatedResults *AggregatedResults  `json:"aggregatedResults,omitempty"`
	Phase3Analytics   *Phase3Analytics    `json:"phase3Analytics,omitempty"`
	UploadedImages    map[string][]string `json:"uploadedImages,omitempty"`

	// ReportTitle overrides the template's default title when set.
	ReportTitle string `json:"reportTitle,omitempty"`

	// Narratives holds optional free-text blocks keyed by section identifier.
	Narratives map[string]string `json:"narratives,omitempty"`
}

// Company identifies the reporting organization.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Product describes one product covered by the report.
type Product struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"isPrimary"`

	// AnnualProductionVolume is the number of functional units produced per
	// year. A missing or zero volume is treated as 1 by the metric deriver.
	AnnualProductionVolume float64 `json:"annualProductionVolume"`

	Packaging []PackagingComponent `json:"packaging,omitempty"`
	Breakdown *StageBreakdown      `json:"breakdown,omitempty"`
}

// PackagingComponentKind enumerates the recognized packaging components.
type PackagingComponentKind string

const (
	PackagingBottle  PackagingComponentKind = "bottle"
	PackagingLabel   PackagingComponentKind = "label"
	PackagingClosure PackagingComponentKind = "closure"
)

// PackagingComponent describes one packaging component of a product.
type PackagingComponent struct {
	Kind            PackagingComponentKind `json:"kind"`
	Material        string                 `json:"material"`
	WeightGrams     float64                `json:"weightGrams"`
	RecycledContent float64                `json:"recycledContentPct"`
}

// StageBreakdown allocates impact across lifecycle stages, in percent.
type StageBreakdown struct {
	IngredientsPct float64 `json:"ingredients"`
	PackagingPct   float64 `json:"packaging"`
	FacilitiesPct  float64 `json:"facilities"`
}

// LCAResult carries the annual aggregate impact totals in fixed units:
// mass in tonnes for carbon and waste, volume in liters for water.
type LCAResult struct {
	TotalCarbonTonnes float64          `json:"totalCarbonFootprint"`
	TotalWaterLiters  float64          `json:"totalWaterFootprint"`
	TotalWasteTonnes  float64          `json:"totalWasteFootprint"`
	CalculatedAt      time.Time        `json:"calculationDate"`
	ImpactsByCategory []CategoryImpact `json:"impactsByCategory,omitempty"`
}

// CategoryImpact is one impact category total with its stage breakdown.
type CategoryImpact struct {
	Category  string          `json:"category"`
	Total     float64         `json:"total"`
	Unit      string          `json:"unit"`
	Breakdown *StageBreakdown `json:"breakdown,omitempty"`
}

// AggregatedResults is the component-level percentage breakdown supplied by
// the upstream calculation layer.
type AggregatedResults struct {
	Components []ComponentShare `json:"components"`
}

// ComponentShare is one component's share of the total impact.
type ComponentShare struct {
	Component string  `json:"component"`
	SharePct  float64 `json:"sharePct"`
}

// Phase3Analytics is the optional advanced gas/uncertainty/benchmark block.
// When present, the gas analyzer passes its per-gas list through verbatim.
type Phase3Analytics struct {
	Gases                 []GasContribution  `json:"gases"`
	DataQualityScore      float64            `json:"dataQualityScore"`
	OverallUncertaintyPct float64            `json:"overallUncertainty"`
	ConfidenceLevelPct    float64            `json:"confidenceLevel"`
	IndustryComparison    IndustryComparison `json:"industryComparison"`
	Compliance            ComplianceLevel    `json:"complianceLevel"`
}

// IndustryComparison benchmarks the product against its category.
type IndustryComparison struct {
	Percentile        float64 `json:"percentile"`
	CategoryAvgKgCO2e float64 `json:"categoryAverage"`
}

// ComplianceLevel flags conformance with the supported reporting standards.
type ComplianceLevel struct {
	GHGProtocol bool `json:"ghgProtocol"`
	ISO14064    bool `json:"iso14064"`
	ISO14067    bool `json:"iso14067"`
}

// DataQualityTier is a qualitative confidence label for a gas contribution.
type DataQualityTier string

const (
	DataQualityMeasured  DataQualityTier = "measured"
	DataQualityEstimated DataQualityTier = "estimated"
	DataQualityModeled   DataQualityTier = "modeled"
)

// GasContribution is one greenhouse gas's contribution to the per-unit
// carbon figure. CO2eKg must equal MassKg * GWPFactor.
type GasContribution struct {
	GasName         string           `json:"gasName"`
	ChemicalFormula string           `json:"chemicalFormula"`
	MassKg          float64          `json:"massKg"`
	GWPFactor       float64          `json:"gwpFactor"`
	CO2eKg          float64          `json:"co2eKg"`
	ContributionPct float64          `json:"contributionPercent"`
	Uncertainty     UncertaintyRange `json:"uncertaintyRange"`
	DataQuality     DataQualityTier  `json:"dataQuality"`
}

// UncertaintyRange bounds a gas contribution estimate.
type UncertaintyRange struct {
	MinKg         float64 `json:"min"`
	MaxKg         float64 `json:"max"`
	ConfidencePct float64 `json:"confidenceLevel"`
}

// RenderedDocument is the final binary artifact returned to the caller.
type RenderedDocument struct {
	// Data is the PDF document bytes.
	Data []byte

	// Filename is a sanitized suggested filename for the document.
	Filename string

	// Variant is the canonical template variant that produced the document.
	Variant string

	// GeneratedAt is when rendering completed.
	GeneratedAt time.Time
}

// PrimaryProduct returns the product flagged as primary, falling back to the
// first product when none is flagged. Returns nil for an empty product list.
func (r *ReportRequest) PrimaryProduct() *Product {
	for i := range r.Products {
		if r.Products[i].IsPrimary {
			return &r.Products[i]
		}
	}
	if len(r.Products) > 0 {
		return &r.Products[0]
	}
	return nil
}
