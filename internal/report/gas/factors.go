package gas

// GWP factors (AR5, 100-year horizon) for the gases covered by basic mode.
const (
	GWPCO2 = 1.0
	GWPCH4 = 28.0
	GWPN2O = 265.0
)

// EpsilonCO2eKg is the contribution floor: gases whose CO2e share falls
// below it are omitted from output entirely.
const EpsilonCO2eKg = 0.001

// Factor describes one gas in the basic-mode industry split: its share of
// the per-unit carbon figure expressed as CO2e, and its GWP multiplier used
// to back-calculate the physical mass.
type Factor struct {
	GasName         string
	ChemicalFormula string
	GWP             float64
	CO2eShare       float64
}

// FactorTable is the injectable reference data for basic-mode decomposition.
// The default values are an industry-typical split; deployments with their
// own emission-factor source can substitute a versioned table.
type FactorTable struct {
	Version string
	Factors []Factor
}

// DefaultFactorTable returns the built-in industry split:
// CO2 82%, CH4 12% as CO2e, N2O 6% as CO2e.
func DefaultFactorTable() FactorTable {
	return FactorTable{
		Version: "default-2024",
		Factors: []Factor{
			{GasName: "Carbon dioxide", ChemicalFormula: "CO₂", GWP: GWPCO2, CO2eShare: 0.82},
			{GasName: "Methane", ChemicalFormula: "CH₄", GWP: GWPCH4, CO2eShare: 0.12},
			{GasName: "Nitrous oxide", ChemicalFormula: "N₂O", GWP: GWPN2O, CO2eShare: 0.06},
		},
	}
}
