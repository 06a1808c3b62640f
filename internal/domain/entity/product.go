package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable stock-keeping unit
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`
	Barcode       string         `gorm:"size:100;unique;not null" json:"barcode"`
	SKU           string         `gorm:"size:100;unique;not null" json:"sku"`
	CostPrice     int64          `gorm:"not null;default:0" json:"-"` // Stored in cents
	SalePrice     int64          `gorm:"not null;default:0" json:"-"` // Stored in cents
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	MinStockLevel int            `gorm:"not null;default:0" json:"min_stock_level"`
	Unit          string         `gorm:"size:50;default:'piece'" json:"unit"`
	Category      *string        `gorm:"size:255;index" json:"category,omitempty"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	StockLogs []StockLog `gorm:"foreignKey:ProductID" json:"stock_logs,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product is at or below its minimum stock level
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		CostPrice  float64 `json:"cost_price"`
		SalePrice  float64 `json:"sale_price"`
		IsLowStock bool    `json:"is_low_stock"`
	}{
		Alias:      Alias(p),
		CostPrice:  float64(p.CostPrice) / 100,
		SalePrice:  float64(p.SalePrice) / 100,
		IsLowStock: p.IsLowStock(),
	})
}
