// Package pricing derives the money amounts of a sale from its line items.
// All computation is done on fixed-point decimals (cents stored as int64,
// percentages via shopspring/decimal) with round-half-up to 2 decimals, so
// repeated additions never accumulate floating-point drift.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for negative quantities or prices, or a
// discount outside [0, 100].
var ErrInvalidInput = errors.New("invalid pricing input")

var oneHundred = decimal.NewFromInt(100)

// LineInput is one product/quantity/price/discount tuple within a sale.
// Prices are cents; DiscountPercent is a percentage in [0, 100].
type LineInput struct {
	Quantity        int
	UnitPrice       int64
	CostPrice       int64
	DiscountPercent decimal.Decimal
}

// LineResult carries the derived amounts for one line, all in cents.
type LineResult struct {
	// EffectivePrice is the unit price after discount, rounded half-up to
	// currency precision.
	EffectivePrice int64
	// Discount is the absolute amount taken off the whole line.
	Discount int64
	// Total is EffectivePrice × Quantity.
	Total int64
}

// Totals carries the derived amounts for a whole sale, all in cents.
type Totals struct {
	Lines    []LineResult
	SubTotal int64 // Σ unit price × quantity, before discount
	Discount int64 // Σ (unit price − effective price) × quantity
	Total    int64 // Σ effective price × quantity == SubTotal − Discount
	Profit   int64 // Σ (effective price − cost price) × quantity, may be negative
}

// Calculate derives all sale amounts from the line inputs. It has no side
// effects; the only error is ErrInvalidInput.
func Calculate(lines []LineInput) (*Totals, error) {
	totals := &Totals{Lines: make([]LineResult, 0, len(lines))}

	for i, line := range lines {
		if err := validate(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}

		effective := EffectivePrice(line.UnitPrice, line.DiscountPercent)
		qty := int64(line.Quantity)

		result := LineResult{
			EffectivePrice: effective,
			Discount:       (line.UnitPrice - effective) * qty,
			Total:          effective * qty,
		}
		totals.Lines = append(totals.Lines, result)

		totals.SubTotal += line.UnitPrice * qty
		totals.Discount += result.Discount
		totals.Total += result.Total
		totals.Profit += (effective - line.CostPrice) * qty
	}

	return totals, nil
}

// EffectivePrice returns the unit price after applying the discount
// percentage, rounded half-up to whole cents.
func EffectivePrice(unitPrice int64, discountPercent decimal.Decimal) int64 {
	if discountPercent.IsZero() {
		return unitPrice
	}
	discounted := decimal.NewFromInt(unitPrice).
		Mul(oneHundred.Sub(discountPercent)).
		Div(oneHundred)
	// Round half away from zero at cent precision; prices are non-negative,
	// so this is round-half-up.
	return discounted.Round(0).IntPart()
}

func validate(line LineInput) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("%w: quantity %d", ErrInvalidInput, line.Quantity)
	}
	if line.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price %d", ErrInvalidInput, line.UnitPrice)
	}
	if line.CostPrice < 0 {
		return fmt.Errorf("%w: cost price %d", ErrInvalidInput, line.CostPrice)
	}
	if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: discount %s%%", ErrInvalidInput, line.DiscountPercent)
	}
	return nil
}
