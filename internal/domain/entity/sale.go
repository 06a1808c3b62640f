package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one completed checkout. A sale owns its items and its
// single payment: all three are created in the same transaction and are
// never updated afterwards.
type Sale struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SubTotal   int64      `gorm:"not null;default:0" json:"-"` // Stored in cents
	Discount   int64      `gorm:"not null;default:0" json:"-"` // Stored in cents
	Total      int64      `gorm:"not null;default:0" json:"-"` // Stored in cents
	Profit     int64      `gorm:"not null;default:0" json:"-"` // Stored in cents
	CreatedAt  time.Time  `json:"created_at"`

	// Relationships
	User     User       `gorm:"foreignKey:CreatedBy" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payment  *Payment   `gorm:"foreignKey:SaleID" json:"payment,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
		Profit   float64 `json:"profit"`
	}{
		Alias:    Alias(s),
		SubTotal: float64(s.SubTotal) / 100,
		Discount: float64(s.Discount) / 100,
		Total:    float64(s.Total) / 100,
		Profit:   float64(s.Profit) / 100,
	})
}

// SaleItem represents one line item within a sale. Price is the effective
// unit price after discount; Discount is the absolute amount taken off the
// whole line.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"-"` // Stored in cents
	Discount  int64     `gorm:"not null;default:0" json:"-"` // Stored in cents
	Total     int64     `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price    float64 `json:"price"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(i),
		Price:    float64(i.Price) / 100,
		Discount: float64(i.Discount) / 100,
		Total:    float64(i.Total) / 100,
	})
}

// Payment is the settlement record for a sale. The id is a generated
// human-legible identifier ("PAY-..."), not a UUID, so receipts can carry it.
type Payment struct {
	ID             string             `gorm:"size:64;primary_key" json:"id"`
	SaleID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	Amount         int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	ReceivedAmount *int64             `json:"-"` // Stored in cents, CASH only
	ChangeAmount   *int64             `json:"-"` // Stored in cents, CASH only
	CreatedAt      time.Time          `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	out := &struct {
		Alias
		Amount         float64  `json:"amount"`
		ReceivedAmount *float64 `json:"received_amount,omitempty"`
		ChangeAmount   *float64 `json:"change_amount,omitempty"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	}
	if p.ReceivedAmount != nil {
		v := float64(*p.ReceivedAmount) / 100
		out.ReceivedAmount = &v
	}
	if p.ChangeAmount != nil {
		v := float64(*p.ChangeAmount) / 100
		out.ChangeAmount = &v
	}
	return json.Marshal(out)
}
