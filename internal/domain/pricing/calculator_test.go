package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/pos-api/internal/domain/pricing"
)

func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestCalculate_SingleLineNoDiscount(t *testing.T) {
	// cost 5.00, sale 10.00, qty 3
	totals, err := pricing.Calculate([]pricing.LineInput{
		{Quantity: 3, UnitPrice: 1000, CostPrice: 500},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), totals.SubTotal)
	assert.Equal(t, int64(0), totals.Discount)
	assert.Equal(t, int64(3000), totals.Total)
	assert.Equal(t, int64(1500), totals.Profit)
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, int64(1000), totals.Lines[0].EffectivePrice)
}

func TestCalculate_DiscountPercent(t *testing.T) {
	totals, err := pricing.Calculate([]pricing.LineInput{
		{Quantity: 2, UnitPrice: 1000, CostPrice: 300, DiscountPercent: pct(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(900), totals.Lines[0].EffectivePrice)
	assert.Equal(t, int64(200), totals.Discount)
	assert.Equal(t, int64(1800), totals.Total)
	assert.Equal(t, int64(1200), totals.Profit)
}

func TestCalculate_TotalIdentityHoldsUnderRounding(t *testing.T) {
	// 3.33% of 9.99 produces sub-cent amounts on every line
	totals, err := pricing.Calculate([]pricing.LineInput{
		{Quantity: 3, UnitPrice: 999, CostPrice: 500, DiscountPercent: pct(3.33)},
		{Quantity: 7, UnitPrice: 101, CostPrice: 99, DiscountPercent: pct(12.5)},
		{Quantity: 1, UnitPrice: 1, CostPrice: 0, DiscountPercent: pct(50)},
	})
	require.NoError(t, err)

	assert.Equal(t, totals.Total, totals.SubTotal-totals.Discount)

	var lineTotal int64
	for _, line := range totals.Lines {
		lineTotal += line.Total
	}
	assert.Equal(t, totals.Total, lineTotal)
}

func TestEffectivePrice_RoundsHalfUp(t *testing.T) {
	// 9.99 at 3.33% off = 9.657... → 9.66
	assert.Equal(t, int64(966), pricing.EffectivePrice(999, pct(3.33)))
	// 0.01 at 50% off = 0.005 → 0.01
	assert.Equal(t, int64(1), pricing.EffectivePrice(1, pct(50)))
	// exact cents stay exact
	assert.Equal(t, int64(900), pricing.EffectivePrice(1000, pct(10)))
	assert.Equal(t, int64(0), pricing.EffectivePrice(1000, pct(100)))
	assert.Equal(t, int64(1000), pricing.EffectivePrice(1000, decimal.Zero))
}

func TestCalculate_LossMakingLineAllowed(t *testing.T) {
	totals, err := pricing.Calculate([]pricing.LineInput{
		{Quantity: 2, UnitPrice: 1000, CostPrice: 1000, DiscountPercent: pct(50)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-1000), totals.Profit)
}

func TestCalculate_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		line pricing.LineInput
	}{
		{"zero quantity", pricing.LineInput{Quantity: 0, UnitPrice: 100}},
		{"negative quantity", pricing.LineInput{Quantity: -1, UnitPrice: 100}},
		{"negative unit price", pricing.LineInput{Quantity: 1, UnitPrice: -1}},
		{"negative cost price", pricing.LineInput{Quantity: 1, UnitPrice: 100, CostPrice: -1}},
		{"discount below zero", pricing.LineInput{Quantity: 1, UnitPrice: 100, DiscountPercent: pct(-1)}},
		{"discount above hundred", pricing.LineInput{Quantity: 1, UnitPrice: 100, DiscountPercent: pct(100.5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.Calculate([]pricing.LineInput{tc.line})
			assert.ErrorIs(t, err, pricing.ErrInvalidInput)
		})
	}
}

func TestCalculate_EmptyInput(t *testing.T) {
	totals, err := pricing.Calculate(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.Total)
	assert.Empty(t, totals.Lines)
}
