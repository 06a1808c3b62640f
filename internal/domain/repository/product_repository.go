package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDForUpdate retrieves a product holding a row-level write lock for
	// the rest of the transaction. Every stock read-modify-write goes through
	// this so concurrent checkouts against the same product serialize instead
	// of both reading the same pre-decrement value.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock writes the new stock quantity computed by the stock guard
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	// IncludeInactive returns deactivated products as well (catalog
	// maintenance); the sale flow never sees them.
	IncludeInactive bool
}
