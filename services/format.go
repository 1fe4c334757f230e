package services

import (
	"fmt"
	"math"
)

// FormatINR formats an amount into Indian Rupee notation using the
// Indian numbering system: after the rightmost 3 digits, digits are
// grouped in pairs (e.g. ₹1,23,45,678). Quotation amounts are whole
// rupees, so no decimals are rendered.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.0f", math.Round(amount))
	result := "₹" + applyIndianGrouping(raw)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatINRDeduction renders a subtracted line the way the proposal
// document shows it: "(-) ₹78,000".
func FormatINRDeduction(amount float64) string {
	return "(-) " + FormatINR(amount)
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// The last 3 digits stay together.
	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
