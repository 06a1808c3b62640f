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
	"github.com/tillpoint/pos-api/pkg/identifier"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

const recentStockLogLimit = 10

// ProductService handles product catalog operations
type ProductService struct {
	txManager    repository.TxManager
	productRepo  repository.ProductRepository
	stockLogRepo repository.StockLogRepository
}

// NewProductService creates a new product service
func NewProductService(
	txManager repository.TxManager,
	productRepo repository.ProductRepository,
	stockLogRepo repository.StockLogRepository,
) *ProductService {
	return &ProductService{
		txManager:    txManager,
		productRepo:  productRepo,
		stockLogRepo: stockLogRepo,
	}
}

// CreateProductInput represents the create product input. Prices are cents.
type CreateProductInput struct {
	Name          string
	Description   *string
	Barcode       string
	SKU           string
	CostPrice     int64
	SalePrice     int64
	StockQuantity int
	MinStockLevel int
	Unit          string
	Category      *string
}

// UpdateProductInput represents the update product input. Nil fields are left
// unchanged. StockQuantity, when set, is recorded as an ADJUSTMENT in the
// stock ledger.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	CostPrice     *int64
	SalePrice     *int64
	StockQuantity *int
	MinStockLevel *int
	Unit          *string
	Category      *string
	IsActive      *bool
}

// CreateProduct creates a product. Barcode and SKU are generated when absent.
// A non-zero initial stock is recorded in the ledger as the product's first
// STOCK_IN entry, in the same transaction as the product itself.
func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, input *CreateProductInput) (*entity.Product, error) {
	if err := validateProductPrices(input.CostPrice, input.SalePrice); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stock_quantity", Message: "Stock quantity cannot be negative"},
		})
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = identifier.GenerateCompact("BC", 12)
	}
	sku := input.SKU
	if sku == "" {
		sku = identifier.GenerateCompact("SKU", 8)
	}
	unit := input.Unit
	if unit == "" {
		unit = "piece"
	}

	product := &entity.Product{
		Name:          input.Name,
		Description:   input.Description,
		Barcode:       barcode,
		SKU:           sku,
		CostPrice:     input.CostPrice,
		SalePrice:     input.SalePrice,
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
		Unit:          unit,
		Category:      input.Category,
		IsActive:      true,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Create(ctx, product); err != nil {
			if errors.Is(err, apperror.ErrDuplicateKey) {
				return apperror.NewConflictError("A product with this barcode or SKU already exists")
			}
			return err
		}

		if input.StockQuantity > 0 {
			return s.stockLogRepo.Create(ctx, &entity.StockLog{
				ProductID:     product.ID,
				Type:          enum.StockLogTypeStockIn,
				Quantity:      input.StockQuantity,
				PreviousStock: 0,
				NewStock:      input.StockQuantity,
				Reason:        "Initial stock",
				Reference:     "Product created",
				CreatedBy:     userID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct updates a product. A quantity change goes through the stock
// guard and is recorded as an ADJUSTMENT entry in the same transaction.
func (s *ProductService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	var updated *entity.Product

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.CostPrice != nil {
			product.CostPrice = *input.CostPrice
		}
		if input.SalePrice != nil {
			product.SalePrice = *input.SalePrice
		}
		if input.MinStockLevel != nil {
			product.MinStockLevel = *input.MinStockLevel
		}
		if input.Unit != nil {
			product.Unit = *input.Unit
		}
		if input.Category != nil {
			product.Category = input.Category
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := validateProductPrices(product.CostPrice, product.SalePrice); err != nil {
			return err
		}

		if input.StockQuantity != nil && *input.StockQuantity != product.StockQuantity {
			newStock, err := stock.Apply(product.StockQuantity, enum.StockLogTypeAdjustment, *input.StockQuantity)
			if err != nil {
				return apperror.NewBadRequestError(err.Error())
			}
			if err := s.stockLogRepo.Create(ctx, &entity.StockLog{
				ProductID:     product.ID,
				Type:          enum.StockLogTypeAdjustment,
				Quantity:      *input.StockQuantity,
				PreviousStock: product.StockQuantity,
				NewStock:      newStock,
				Reason:        "Product updated",
				Reference:     "Manual",
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
			product.StockQuantity = newStock
		}

		if err := s.productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, apperror.ErrDuplicateKey) {
				return apperror.NewConflictError("A product with this barcode or SKU already exists")
			}
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProduct retrieves a product with its most recent ledger entries attached
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	logs, err := s.stockLogRepo.ListRecentByProduct(ctx, id, recentStockLogLimit)
	if err != nil {
		return nil, err
	}
	product.StockLogs = logs
	return product, nil
}

// GetProductByBarcode retrieves an active product by its barcode (till scan)
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns active products at or below their minimum
// stock level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// DeleteProduct soft-deletes a product. Its ledger entries remain.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

func validateProductPrices(costPrice, salePrice int64) error {
	var fieldErrors []apperror.FieldError
	if costPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "cost_price", Message: "Cost price cannot be negative",
		})
	}
	if salePrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "sale_price", Message: "Sale price cannot be negative",
		})
	}
	if salePrice < costPrice {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "sale_price", Message: "Sale price cannot be below cost price",
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
