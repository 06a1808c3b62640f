// Package loyalty converts sale profit into customer reward points.
package loyalty

import "github.com/shopspring/decimal"

// EarnRate is the fraction of profit (in currency units) converted to points.
var EarnRate = decimal.NewFromFloat(0.05)

// PointsFromProfit returns the points earned for a sale's profit, given in
// cents. Points are floored, never rounded: a profit of 19.99 at the 5% rate
// earns 0 points, 20.00 earns exactly 1. Zero or negative profit earns
// nothing.
func PointsFromProfit(profitCents int64) int {
	if profitCents <= 0 {
		return 0
	}
	points := decimal.NewFromInt(profitCents).
		Div(decimal.NewFromInt(100)).
		Mul(EarnRate).
		Floor()
	return int(points.IntPart())
}
