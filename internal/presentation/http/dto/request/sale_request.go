package request

import "github.com/google/uuid"

// CreateSaleItemRequest represents one line item in a checkout request.
// Price overrides the product's sale price when present; DiscountPercent is
// a percentage in [0, 100].
type CreateSaleItemRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,min=1"`
	Price           *float64  `json:"price"`
	DiscountPercent float64   `json:"discount_percent" binding:"min=0,max=100"`
}

// CreateSaleRequest represents the checkout request body. ReceivedAmount is
// the cash tendered, required when payment_method is CASH.
type CreateSaleRequest struct {
	CustomerID     *uuid.UUID              `json:"customer_id"`
	PaymentMethod  string                  `json:"payment_method" binding:"required"`
	ReceivedAmount *float64                `json:"received_amount"`
	Items          []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}
