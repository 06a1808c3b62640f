package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations. Sales and
// their items are write-once: there are no update operations.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetWithDetails loads a sale with its items (and their products),
	// payment and customer
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	CreatedBy  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create stores the settlement record; a duplicate generated id surfaces
	// as an error wrapping apperror.ErrDuplicateKey
	Create(ctx context.Context, payment *entity.Payment) error
}
