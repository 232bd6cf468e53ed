package domain

import "github.com/shopspring/decimal"

var lbPerKg = decimal.RequireFromString("2.2046226218")

// NormalizeWeight converts a weight entered in "kg" or "lb" to kilograms.
// Unrecognised units pass through unchanged.
func NormalizeWeight(v decimal.Decimal, unit string) decimal.Decimal {
	if unit == "lb" {
		return v.DivRound(lbPerKg, 3)
	}
	return v
}

// ConvertWeight converts a stored kilogram value to the requested display
// unit. Anything other than "lb" returns the value unchanged.
func ConvertWeight(kg decimal.Decimal, to string) decimal.Decimal {
	if to == "lb" {
		return kg.Mul(lbPerKg).Round(3)
	}
	return kg
}
