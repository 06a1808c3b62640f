package request

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Cents converts a currency amount from the JSON body into whole cents,
// rounding half-up. Going through decimal avoids the off-by-one that
// int64(v * 100) produces for values like 19.95.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()
}

// CentsPtr converts an optional currency amount into cents
func CentsPtr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := Cents(*v)
	return &c
}
