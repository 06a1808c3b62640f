package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockLog is one immutable stock-change event. Rows are created exactly once
// and never updated or deleted; corrections are new compensating entries.
// Folding all entries for a product in creation order from zero reproduces
// the product's current stock quantity.
type StockLog struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Type          enum.StockLogType `gorm:"size:20;not null" json:"type"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	PreviousStock int               `gorm:"not null" json:"previous_stock"`
	NewStock      int               `gorm:"not null" json:"new_stock"`
	Reason        string            `gorm:"size:255" json:"reason"`
	Reference     string            `gorm:"size:255" json:"reference"`
	CreatedBy     uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:CreatedBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock log
func (l *StockLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLog model
func (StockLog) TableName() string {
	return "stock_logs"
}

// Delta returns the signed stock change this entry represents
func (l *StockLog) Delta() int {
	return l.NewStock - l.PreviousStock
}
