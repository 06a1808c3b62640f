// Package stock enforces the inventory invariant: a product's stock quantity
// never goes negative. Both the checkout flow and the manual adjustment
// endpoint go through Apply, so invariant enforcement and the shape of the
// resulting ledger entry are identical for every entry point.
package stock

import (
	"errors"
	"fmt"

	"github.com/tillpoint/pos-api/internal/domain/enum"
)

var (
	// ErrInsufficientStock is returned when a subtracting change would make
	// the stock quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for non-positive quantities (negative
	// targets for adjustments).
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrUnknownType is returned for a stock log type outside the closed set.
	ErrUnknownType = errors.New("unknown stock change type")
)

// Apply computes the stock quantity resulting from one stock-change event.
//
// STOCK_IN, PURCHASE and RETURN add quantity; STOCK_OUT and SALE subtract it;
// ADJUSTMENT treats quantity as the absolute target value (the delta is
// target − current). Apply is a pure computation: the caller persists the
// returned value and the matching ledger entry together, inside whatever
// transaction wraps the whole operation.
func Apply(current int, typ enum.StockLogType, quantity int) (int, error) {
	if current < 0 {
		return 0, fmt.Errorf("%w: current stock %d is negative", ErrInvalidQuantity, current)
	}

	switch typ {
	case enum.StockLogTypeStockIn, enum.StockLogTypePurchase, enum.StockLogTypeReturn:
		if quantity <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}
		return current + quantity, nil
	case enum.StockLogTypeStockOut, enum.StockLogTypeSale:
		if quantity <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}
		if quantity > current {
			return 0, ErrInsufficientStock
		}
		return current - quantity, nil
	case enum.StockLogTypeAdjustment:
		// quantity is the absolute target, zero included
		if quantity < 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}
		return quantity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

// Rebuild folds a sequence of (previous, new) ledger pairs from an initial
// value and returns the resulting quantity. It is used to verify that the
// ledger reconstructs the stored stock quantity exactly.
func Rebuild(initial int, deltas []int) int {
	quantity := initial
	for _, d := range deltas {
		quantity += d
	}
	return quantity
}
