package tables

import (
	"math"
	"strings"
)

// NormalizeText trims surrounding whitespace and collapses internal runs of
// whitespace to a single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSKU trims a SKU. Case is preserved; SKUs compare case-sensitively.
func NormalizeSKU(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// orNA returns "N/A" for a blank optional value.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
