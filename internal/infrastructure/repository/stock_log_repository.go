package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	domainRepo "github.com/tillpoint/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockLogRepository struct {
	db *gorm.DB
}

// NewStockLogRepository creates a new stock log repository
func NewStockLogRepository(db *gorm.DB) domainRepo.StockLogRepository {
	return &stockLogRepository{db: db}
}

func (r *stockLogRepository) Create(ctx context.Context, log *entity.StockLog) error {
	return translateError(dbFrom(ctx, r.db).Create(log).Error)
}

func (r *stockLogRepository) ListRecentByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]entity.StockLog, error) {
	var logs []entity.StockLog
	err := dbFrom(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *stockLogRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.StockLog, error) {
	var logs []entity.StockLog
	err := dbFrom(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error
	return logs, err
}
