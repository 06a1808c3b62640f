package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByIDForUpdate retrieves a customer holding a row-level write lock,
	// used while accruing loyalty points inside a sale transaction
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// UpdateLoyaltyPoints writes the new balance computed by the accrual
	UpdateLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

// LoyaltyTransactionRepository defines the interface for the append-only
// loyalty ledger. Like the stock ledger, entries are never updated or
// deleted.
type LoyaltyTransactionRepository interface {
	Create(ctx context.Context, tx *entity.LoyaltyTransaction) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LoyaltyTransaction, int64, error)
}
