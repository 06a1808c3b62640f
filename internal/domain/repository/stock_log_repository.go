package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
)

// StockLogRepository defines the interface for the append-only stock ledger.
// There are deliberately no update or delete operations: entries are
// immutable and corrections happen via new compensating entries.
type StockLogRepository interface {
	// Create appends one ledger entry
	Create(ctx context.Context, log *entity.StockLog) error
	// ListRecentByProduct returns the newest entries first, capped at limit
	ListRecentByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]entity.StockLog, error)
	// ListByProduct returns all entries for a product in creation order,
	// oldest first, so callers can fold them into a running balance
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockLog, error)
}
