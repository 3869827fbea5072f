package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencySymbol is prefixed to every formatted amount; all amounts are US dollars
const currencySymbol = "$"

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats an amount as whole dollars with thousands separators.
// Cents are rounded half away from zero: 2367.5 -> "$2,368", -0.5 -> "-$1".
func FormatCurrency(amount float64) string {
	if s, ok := formatNonFinite(amount); ok {
		return s
	}
	rounded := decimal.NewFromFloat(amount).Round(0)
	return signed(rounded.IsNegative(), currencySymbol+currencyPrinter.Sprintf("%d", rounded.Abs().IntPart()))
}

// FormatPrice formats a catalog price with cents, e.g. "$12.99"
func FormatPrice(amount float64) string {
	if s, ok := formatNonFinite(amount); ok {
		return s
	}
	rounded := decimal.NewFromFloat(amount).Round(2)
	whole := rounded.Abs().Truncate(0)
	cents := rounded.Abs().Sub(whole).Shift(2).IntPart()
	return signed(rounded.IsNegative(),
		fmt.Sprintf("%s%s.%02d", currencySymbol, currencyPrinter.Sprintf("%d", whole.IntPart()), cents))
}

// FormatMultiplier formats a growth multiple with one decimal, e.g. "2.4x"
func FormatMultiplier(x float64) string {
	return fmt.Sprintf("%.1fx", x)
}

// FormatRate formats a decimal rate as a percentage with one decimal, e.g. 0.09 -> "9.0%"
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// AffordableQuantity returns how many whole items the budget buys.
// Zero or negative budgets and prices yield 0.
func AffordableQuantity(budget, itemPrice float64) int {
	if budget <= 0 || itemPrice <= 0 {
		return 0
	}
	q := math.Floor(budget / itemPrice)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return int(q)
}

func signed(negative bool, s string) string {
	if negative {
		return "-" + s
	}
	return s
}

func formatNonFinite(amount float64) (string, bool) {
	switch {
	case math.IsNaN(amount):
		return currencySymbol + "NaN", true
	case math.IsInf(amount, 1):
		return currencySymbol + "∞", true
	case math.IsInf(amount, -1):
		return "-" + currencySymbol + "∞", true
	}
	return "", false
}

// cleanAmountInput strips the currency symbol, grouping separators and spaces a user may type
func cleanAmountInput(input string) string {
	return strings.NewReplacer(currencySymbol, "", ",", "", " ", "").Replace(strings.TrimSpace(input))
}
