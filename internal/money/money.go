// Package money implements the 2-decimal monetary arithmetic used by quote
// and invoice totals. Every accumulation step rounds to cents so that totals
// never drift from what the per-line amounts display.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// LineTotal computes quantity × unit price, rounded to 2 decimals.
func LineTotal(quantity, unitPrice float64) float64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(2).
		InexactFloat64()
}

// Subtotal sums line totals, rounding after each addition.
func Subtotal(lineTotals []float64) float64 {
	sum := decimal.Zero
	for _, lt := range lineTotals {
		sum = sum.Add(decimal.NewFromFloat(lt)).Round(2)
	}
	return sum.InexactFloat64()
}

// Total computes subtotal + tax, rounded to 2 decimals.
func Total(subtotal, tax float64) float64 {
	return decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(tax)).
		Round(2).
		InexactFloat64()
}
