package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/internal/domain/stock"
	"github.com/tillpoint/pos-api/pkg/apperror"
)

// StockService handles manual stock changes and the stock ledger
type StockService struct {
	txManager    repository.TxManager
	productRepo  repository.ProductRepository
	stockLogRepo repository.StockLogRepository
}

// NewStockService creates a new stock service
func NewStockService(
	txManager repository.TxManager,
	productRepo repository.ProductRepository,
	stockLogRepo repository.StockLogRepository,
) *StockService {
	return &StockService{
		txManager:    txManager,
		productRepo:  productRepo,
		stockLogRepo: stockLogRepo,
	}
}

// AdjustStockInput represents a manual stock change. For STOCK_IN and
// STOCK_OUT Quantity is the amount added or removed; for ADJUSTMENT it is
// the absolute target value after a physical count.
type AdjustStockInput struct {
	Type     enum.StockLogType
	Quantity int
	Reason   string
}

// AdjustStock applies a manual stock change to a product. The new quantity
// and the ledger entry are written in the same transaction, under the same
// row lock that checkouts take, so a concurrent sale cannot interleave
// between the read and the write.
func (s *StockService) AdjustStock(ctx context.Context, userID, productID uuid.UUID, input *AdjustStockInput) (*entity.Product, error) {
	if !input.Type.IsValid() || !input.Type.IsAdjustable() {
		return nil, apperror.NewBadRequestError("Type must be one of STOCK_IN, STOCK_OUT, ADJUSTMENT")
	}

	var updated *entity.Product
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		newStock, err := stock.Apply(product.StockQuantity, input.Type, input.Quantity)
		if err != nil {
			if errors.Is(err, stock.ErrInsufficientStock) {
				return apperror.NewInsufficientStockError(product.Name, product.StockQuantity, input.Quantity)
			}
			return apperror.NewBadRequestError(err.Error())
		}

		if err := s.stockLogRepo.Create(ctx, &entity.StockLog{
			ProductID:     product.ID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			PreviousStock: product.StockQuantity,
			NewStock:      newStock,
			Reason:        input.Reason,
			Reference:     "Manual",
			CreatedBy:     userID,
		}); err != nil {
			return err
		}
		if err := s.productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}

		product.StockQuantity = newStock
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetStockHistory returns the full ledger for a product in creation order,
// oldest first.
func (s *StockService) GetStockHistory(ctx context.Context, productID uuid.UUID) ([]entity.StockLog, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.stockLogRepo.ListByProduct(ctx, productID)
}
