package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/stock"
)

func TestApply_AddingTypes(t *testing.T) {
	for _, typ := range []enum.StockLogType{
		enum.StockLogTypeStockIn,
		enum.StockLogTypePurchase,
		enum.StockLogTypeReturn,
	} {
		got, err := stock.Apply(5, typ, 3)
		require.NoError(t, err, "type %s", typ)
		assert.Equal(t, 8, got)
	}
}

func TestApply_SubtractingTypes(t *testing.T) {
	for _, typ := range []enum.StockLogType{
		enum.StockLogTypeStockOut,
		enum.StockLogTypeSale,
	} {
		got, err := stock.Apply(5, typ, 3)
		require.NoError(t, err, "type %s", typ)
		assert.Equal(t, 2, got)

		// Draining to exactly zero is allowed
		got, err = stock.Apply(5, typ, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, got)

		_, err = stock.Apply(5, typ, 6)
		assert.ErrorIs(t, err, stock.ErrInsufficientStock, "type %s", typ)
	}
}

func TestApply_AdjustmentIsAbsolute(t *testing.T) {
	got, err := stock.Apply(17, enum.StockLogTypeAdjustment, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	got, err = stock.Apply(3, enum.StockLogTypeAdjustment, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = stock.Apply(3, enum.StockLogTypeAdjustment, -1)
	assert.ErrorIs(t, err, stock.ErrInvalidQuantity)
}

func TestApply_NonPositiveQuantities(t *testing.T) {
	for _, typ := range []enum.StockLogType{
		enum.StockLogTypeStockIn,
		enum.StockLogTypeStockOut,
		enum.StockLogTypeSale,
		enum.StockLogTypePurchase,
		enum.StockLogTypeReturn,
	} {
		_, err := stock.Apply(5, typ, 0)
		assert.ErrorIs(t, err, stock.ErrInvalidQuantity, "type %s", typ)

		_, err = stock.Apply(5, typ, -2)
		assert.ErrorIs(t, err, stock.ErrInvalidQuantity, "type %s", typ)
	}
}

func TestApply_UnknownType(t *testing.T) {
	_, err := stock.Apply(5, enum.StockLogType("GIFT"), 1)
	assert.ErrorIs(t, err, stock.ErrUnknownType)
}

func TestApply_NegativeCurrentRejected(t *testing.T) {
	_, err := stock.Apply(-1, enum.StockLogTypeStockIn, 1)
	assert.ErrorIs(t, err, stock.ErrInvalidQuantity)
}

func TestRebuild(t *testing.T) {
	assert.Equal(t, 50, stock.Rebuild(0, []int{50}))
	assert.Equal(t, 7, stock.Rebuild(10, []int{-3}))
	assert.Equal(t, 12, stock.Rebuild(0, []int{50, -8, -30}))
	assert.Equal(t, 10, stock.Rebuild(10, nil))
}
