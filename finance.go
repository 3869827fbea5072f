package main

import "math"

// DefaultHorizonYears is the number of years a projection compounds over
const DefaultHorizonYears = 10

// RateBand is the spread applied either side of the base annual rate (1 percentage point)
const RateBand = 0.01

// FallbackAnnualReturn is the historical average used whenever no market data is available
const FallbackAnnualReturn = 0.10

// Projection holds the conservative and optimistic future values of a principal
type Projection struct {
	Conservative float64 `json:"conservative"`
	Optimistic   float64 `json:"optimistic"`
	Years        int     `json:"years"`
}

// CompoundGrowth calculates the future value of a principal using FV = P × (1 + r)^t.
// Invalid inputs (non-positive principal or years, negative rate) yield 0 rather than an error.
func CompoundGrowth(principal, annualRate float64, years int) float64 {
	if principal <= 0 || annualRate < 0 || years <= 0 {
		return 0
	}
	return principal * math.Pow(1+annualRate, float64(years))
}

// ConservativeRate returns the base rate less one band, never below zero
func ConservativeRate(baseAnnualRate float64) float64 {
	return math.Max(0, baseAnnualRate-RateBand)
}

// OptimisticRate returns the base rate plus one band
func OptimisticRate(baseAnnualRate float64) float64 {
	return baseAnnualRate + RateBand
}

// ProjectGrowth projects a principal over the given horizon at the conservative and
// optimistic rates derived from a single base annual rate.
// No rounding is applied here; rounding happens only when values are formatted.
func ProjectGrowth(principal, baseAnnualRate float64, years int) Projection {
	return Projection{
		Conservative: CompoundGrowth(principal, ConservativeRate(baseAnnualRate), years),
		Optimistic:   CompoundGrowth(principal, OptimisticRate(baseAnnualRate), years),
		Years:        years,
	}
}

// ConservativeGain is the growth above the principal in the conservative scenario
func (p Projection) ConservativeGain(principal float64) float64 {
	return p.Conservative - principal
}

// OptimisticGain is the growth above the principal in the optimistic scenario
func (p Projection) OptimisticGain(principal float64) float64 {
	return p.Optimistic - principal
}

// ConservativeMultiplier is how many times the principal the conservative value is
func (p Projection) ConservativeMultiplier(principal float64) float64 {
	return multiplier(p.Conservative, principal)
}

// OptimisticMultiplier is how many times the principal the optimistic value is
func (p Projection) OptimisticMultiplier(principal float64) float64 {
	return multiplier(p.Optimistic, principal)
}

func multiplier(value, principal float64) float64 {
	if principal <= 0 {
		return 0
	}
	return value / principal
}

// ImpliedAnnualRate recovers the annualised rate that turns principal into value over years.
// Used by the results view to show "(9.0% annually)" next to each scenario.
func ImpliedAnnualRate(value, principal float64, years int) float64 {
	if principal <= 0 || value <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(value/principal, 1/float64(years)) - 1
}

// YearValue is the value of both scenarios at the end of a given year
type YearValue struct {
	Year         int     `json:"year"`
	Conservative float64 `json:"conservative"`
	Optimistic   float64 `json:"optimistic"`
}

// GrowthSchedule returns the year-by-year values that ProjectGrowth ends on
func GrowthSchedule(principal, baseAnnualRate float64, years int) []YearValue {
	schedule := make([]YearValue, 0, max(years, 0))
	for y := 1; y <= years; y++ {
		p := ProjectGrowth(principal, baseAnnualRate, y)
		schedule = append(schedule, YearValue{Year: y, Conservative: p.Conservative, Optimistic: p.Optimistic})
	}
	return schedule
}
