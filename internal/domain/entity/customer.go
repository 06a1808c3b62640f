package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents an optional buyer profile. Loyalty points only grow
// through accrual; redemption is a separate flow with its own compensating
// ledger entries.
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	LoyaltyPoints int            `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales               []Sale               `gorm:"foreignKey:CustomerID" json:"-"`
	LoyaltyTransactions []LoyaltyTransaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// LoyaltyTransaction is one immutable entry in a customer's loyalty ledger,
// mirroring the stock ledger pattern: append-only, balance snapshot after
// applying the points.
type LoyaltyTransaction struct {
	ID         string                      `gorm:"size:64;primary_key" json:"id"`
	CustomerID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Points     int                         `gorm:"not null" json:"points"`
	Type       enum.LoyaltyTransactionType `gorm:"size:20;not null" json:"type"`
	Reference  string                      `gorm:"size:255" json:"reference"`
	Balance    int                         `gorm:"not null" json:"balance"`
	CreatedAt  time.Time                   `json:"created_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName returns the table name for the LoyaltyTransaction model
func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}
