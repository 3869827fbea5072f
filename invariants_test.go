package main

import (
	"math"
	"testing"
)

// Mathematical Invariants Test Suite
//
// Property-style tests for relationships that must hold for any input,
// rather than specific numeric values.

var (
	invariantPrincipals = []float64{0.01, 1, 5, 99.99, 100, 1250.50, 10000, 999999.99, 1000000}
	invariantRates      = []float64{0, 0.005, 0.01, 0.05, 0.10, 0.122, 0.25}
	invariantYears      = []int{1, 2, 5, 10, 30}
)

// =============================================================================
// Projection Invariants
// =============================================================================

func TestInvariant_OptimisticExceedsConservative(t *testing.T) {
	// Property: with a positive principal the optimistic scenario is always strictly ahead
	for _, p := range invariantPrincipals {
		for _, r := range invariantRates {
			for _, y := range invariantYears {
				proj := ProjectGrowth(p, r, y)
				if proj.Optimistic <= proj.Conservative {
					t.Errorf("P=%v r=%v y=%d: optimistic %v <= conservative %v",
						p, r, y, proj.Optimistic, proj.Conservative)
				}
			}
		}
	}
}

func TestInvariant_ConservativeNeverBelowPrincipal(t *testing.T) {
	// Property: the conservative rate is floored at 0, so money never shrinks
	for _, p := range invariantPrincipals {
		for _, r := range invariantRates {
			proj := ProjectGrowth(p, r, DefaultHorizonYears)
			if proj.Conservative < p-1e-9 {
				t.Errorf("P=%v r=%v: conservative %v below principal", p, r, proj.Conservative)
			}
		}
	}
}

func TestInvariant_GrowthMonotonicInYears(t *testing.T) {
	for _, r := range invariantRates {
		previous := 0.0
		for y := 1; y <= 30; y++ {
			v := CompoundGrowth(1000, r, y)
			if v < previous {
				t.Errorf("r=%v: value fell from %v to %v in year %d", r, previous, v, y)
			}
			previous = v
		}
	}
}

func TestInvariant_GrowthScalesWithPrincipal(t *testing.T) {
	// Property: FV is linear in P, so doubling the principal doubles the value
	for _, r := range invariantRates {
		for _, y := range invariantYears {
			single := CompoundGrowth(1000, r, y)
			double := CompoundGrowth(2000, r, y)
			if math.Abs(double-2*single) > 1e-6 {
				t.Errorf("r=%v y=%d: FV(2000)=%v, 2*FV(1000)=%v", r, y, double, 2*single)
			}
		}
	}
}

func TestInvariant_ConservativeRateZeroBelowBand(t *testing.T) {
	for _, base := range []float64{0, 0.001, 0.005, 0.0099} {
		if got := ConservativeRate(base); got != 0 {
			t.Errorf("ConservativeRate(%v) = %v, want 0", base, got)
		}
	}
}

// =============================================================================
// Content Selection Invariants
// =============================================================================

func TestInvariant_AffordableQuantityFitsBudget(t *testing.T) {
	budgets := []float64{0, 1, 6.99, 12.98, 12.99, 50, 2839.42, 1e6}
	for _, budget := range budgets {
		for _, item := range catalogFixture {
			q := AffordableQuantity(budget, item.Price)
			if q < 0 {
				t.Fatalf("negative quantity %d", q)
			}
			if float64(q)*item.Price > budget+1e-9 {
				t.Errorf("budget %v: %d x %v exceeds budget", budget, q, item.Price)
			}
			if float64(q+1)*item.Price <= budget {
				t.Errorf("budget %v: could afford %d x %v, got %d", budget, q+1, item.Price, q)
			}
		}
	}
}

func TestInvariant_MostExpensiveAffordableIsMaximal(t *testing.T) {
	for budget := 0.0; budget <= 60; budget += 0.5 {
		item, ok := MostExpensiveAffordable(catalogFixture, budget)
		if !ok {
			for _, it := range catalogFixture {
				if it.Price <= budget {
					t.Errorf("budget %v: nothing chosen but %q fits", budget, it.Name)
				}
			}
			continue
		}
		if item.Price > budget {
			t.Errorf("budget %v: chose %q at %v", budget, item.Name, item.Price)
		}
		for _, it := range catalogFixture {
			if it.Price <= budget && it.Price > item.Price {
				t.Errorf("budget %v: chose %q but %q is dearer and fits", budget, item.Name, it.Name)
			}
		}
	}
}

func TestInvariant_QuoteAlwaysFromList(t *testing.T) {
	known := make(map[string]bool, QuoteCount())
	for _, q := range investingQuotes {
		known[q] = true
	}
	for _, seed := range []int64{math.MinInt64 + 1, -1000, -31, -1, 0, 1, 29, 30, 31, 1 << 40, math.MaxInt64} {
		if q := QuoteBySeed(seed); !known[q] {
			t.Errorf("QuoteBySeed(%d) returned unknown quote %q", seed, q)
		}
	}
}
