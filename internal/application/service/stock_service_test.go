package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/pos-api/internal/application/service"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/stock"
	"github.com/tillpoint/pos-api/pkg/apperror"
)

type stockFixture struct {
	store  *memStore
	svc    *service.StockService
	userID uuid.UUID
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	store := newMemStore()
	svc := service.NewStockService(
		&fakeTxManager{store: store},
		&fakeProductRepo{store: store},
		&fakeStockLogRepo{store: store},
	)
	return &stockFixture{store: store, svc: svc, userID: uuid.New()}
}

func (f *stockFixture) addProduct(name string, quantity int) *entity.Product {
	p := &entity.Product{
		ID:            uuid.New(),
		Name:          name,
		Barcode:       "BC" + name,
		SKU:           "SKU" + name,
		StockQuantity: quantity,
		IsActive:      true,
	}
	f.store.products[p.ID] = p
	return p
}

func TestAdjustStock_StockInAdds(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 5)

	updated, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
		Type:     enum.StockLogTypeStockIn,
		Quantity: 20,
		Reason:   "Delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.StockQuantity)

	require.Len(t, f.store.stockLogs, 1)
	log := f.store.stockLogs[0]
	assert.Equal(t, enum.StockLogTypeStockIn, log.Type)
	assert.Equal(t, 5, log.PreviousStock)
	assert.Equal(t, 25, log.NewStock)
	assert.Equal(t, "Delivery", log.Reason)
	assert.Equal(t, "Manual", log.Reference)
}

func TestAdjustStock_StockOutSubtracts(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 5)

	updated, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
		Type:     enum.StockLogTypeStockOut,
		Quantity: 5,
		Reason:   "Damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
}

func TestAdjustStock_StockOutBeyondStockRejected(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 5)

	_, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
		Type:     enum.StockLogTypeStockOut,
		Quantity: 6,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	assert.Equal(t, 5, f.store.products[product.ID].StockQuantity)
	assert.Empty(t, f.store.stockLogs)
}

func TestAdjustStock_AdjustmentIsAbsoluteTarget(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 17)

	// Count came back at 12
	updated, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
		Type:     enum.StockLogTypeAdjustment,
		Quantity: 12,
		Reason:   "Stocktake",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.StockQuantity)

	log := f.store.stockLogs[0]
	assert.Equal(t, 17, log.PreviousStock)
	assert.Equal(t, 12, log.NewStock)
	assert.Equal(t, -5, log.Delta())

	// Zero is a valid target
	updated, err = f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
		Type:     enum.StockLogTypeAdjustment,
		Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
}

func TestAdjustStock_LedgerOnlyTypesRejected(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 5)

	for _, typ := range []enum.StockLogType{
		enum.StockLogTypeSale,
		enum.StockLogTypePurchase,
		enum.StockLogTypeReturn,
		enum.StockLogType("GIFT"),
	} {
		_, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, &service.AdjustStockInput{
			Type:     typ,
			Quantity: 1,
		})
		require.Error(t, err, "type %s", typ)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
	assert.Empty(t, f.store.stockLogs)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.AdjustStock(context.Background(), f.userID, uuid.New(), &service.AdjustStockInput{
		Type:     enum.StockLogTypeStockIn,
		Quantity: 1,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetStockHistory_FoldsBackToCurrentQuantity(t *testing.T) {
	f := newStockFixture(t)
	product := f.addProduct("Flour", 0)

	steps := []*service.AdjustStockInput{
		{Type: enum.StockLogTypeStockIn, Quantity: 50},
		{Type: enum.StockLogTypeStockOut, Quantity: 8},
		{Type: enum.StockLogTypeAdjustment, Quantity: 40},
		{Type: enum.StockLogTypeStockIn, Quantity: 10},
	}
	for _, step := range steps {
		_, err := f.svc.AdjustStock(context.Background(), f.userID, product.ID, step)
		require.NoError(t, err)
	}

	logs, err := f.svc.GetStockHistory(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, logs, len(steps))

	deltas := make([]int, len(logs))
	for i, log := range logs {
		deltas[i] = log.Delta()
	}
	assert.Equal(t, f.store.products[product.ID].StockQuantity, stock.Rebuild(0, deltas))
	assert.Equal(t, 50, f.store.products[product.ID].StockQuantity)
}
