package economics

// Default economic parameters (USDOT 2024 guidance).
const (
	DefaultDiscountRate    = 0.07
	DefaultAnalysisHorizon = 20
)

// CrashCosts maps crash severity class to unit cost in dollars.
type CrashCosts struct {
	Fatal   float64
	InjuryA float64 // incapacitating
	InjuryB float64 // non-incapacitating
	InjuryC float64 // possible injury
	PDO     float64 // property damage only
}

// CrashCostsUSDOT2024 are the 2024 USDOT unit crash costs.
var CrashCostsUSDOT2024 = CrashCosts{
	Fatal:   13_200_000,
	InjuryA: 800_000,
	InjuryB: 400_000,
	InjuryC: 200_000,
	PDO:     15_000,
}

// CrashCostsHarwood2003 are the 1994 FHWA unit costs used by the
// Harwood (2003) case study.
var CrashCostsHarwood2003 = CrashCosts{
	Fatal:   2_600_000,
	InjuryA: 180_000,
	InjuryB: 36_000,
	InjuryC: 19_000,
	PDO:     2_000,
}

// Value of time in $/hour.
const (
	VOTPersonalUSDOT2024 = 17.80
	VOTBusinessUSDOT2024 = 33.60
	VOTTruckUSDOT2024    = 32.80
	VOTHarwood2003       = 10.00 // single value used in the case study
)
