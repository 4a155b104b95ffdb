// Package economics provides the discounting and benefit-cost utilities
// used when building alternative cost and benefit figures. All functions
// are pure; invalid parameters are reported via ErrInvalidParameter.
package economics

import (
	"fmt"
	"math"
)

// ErrInvalidParameter indicates an out-of-range argument to an economic
// calculation (negative rate, negative year, non-positive horizon).
var ErrInvalidParameter = fmt.Errorf("economics: invalid parameter")

// DiscountFactor returns the single-year discount factor 1/(1+rate)^year.
func DiscountFactor(rate float64, year int) (float64, error) {
	if rate < 0 {
		return 0, fmt.Errorf("%w: discount rate must be non-negative, got %g", ErrInvalidParameter, rate)
	}
	if year < 0 {
		return 0, fmt.Errorf("%w: year must be non-negative, got %d", ErrInvalidParameter, year)
	}
	return 1 / math.Pow(1+rate, float64(year)), nil
}

// DiscountFactors returns the discount factors for years 1..horizon.
func DiscountFactors(rate float64, horizon int) ([]float64, error) {
	if rate < 0 {
		return nil, fmt.Errorf("%w: discount rate must be non-negative, got %g", ErrInvalidParameter, rate)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidParameter, horizon)
	}
	factors := make([]float64, horizon)
	for t := 1; t <= horizon; t++ {
		factors[t-1] = 1 / math.Pow(1+rate, float64(t))
	}
	return factors, nil
}

// PresentWorthFactor returns the uniform-series present worth factor
// (P/A, i, n) = [(1+i)^n - 1] / [i*(1+i)^n], used to convert uniform
// annual benefits to present value. Degenerates to years when rate is 0.
func PresentWorthFactor(rate float64, years int) (float64, error) {
	if rate < 0 {
		return 0, fmt.Errorf("%w: discount rate must be non-negative, got %g", ErrInvalidParameter, rate)
	}
	if years <= 0 {
		return 0, fmt.Errorf("%w: years must be positive, got %d", ErrInvalidParameter, years)
	}
	if rate == 0 {
		return float64(years), nil
	}
	growth := math.Pow(1+rate, float64(years))
	return (growth - 1) / (rate * growth), nil
}

// NPV returns the net present value of the cash flows (year 1 onward)
// discounted at rate, less the initial investment at year 0.
func NPV(cashFlows []float64, rate float64, initialInvestment float64) (float64, error) {
	if len(cashFlows) == 0 {
		return -initialInvestment, nil
	}
	factors, err := DiscountFactors(rate, len(cashFlows))
	if err != nil {
		return 0, err
	}
	pv := 0.0
	for t, flow := range cashFlows {
		pv += flow * factors[t]
	}
	return pv - initialInvestment, nil
}

// BCR returns the benefit-cost ratio. When costs are zero it is +Inf for
// positive benefits and 0 otherwise.
func BCR(benefits, costs float64) float64 {
	if costs == 0 {
		if benefits > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return benefits / costs
}

// Annualize converts a present value to its equivalent uniform annual
// value over the given horizon.
func Annualize(presentValue, rate float64, years int) (float64, error) {
	pwf, err := PresentWorthFactor(rate, years)
	if err != nil {
		return 0, err
	}
	return presentValue / pwf, nil
}
