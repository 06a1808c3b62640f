package request

// CreateProductRequest represents the create product request body. Prices are
// currency amounts (converted to cents internally). Barcode and SKU are
// generated when omitted.
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	Barcode       string  `json:"barcode"`
	SKU           string  `json:"sku"`
	CostPrice     float64 `json:"cost_price" binding:"min=0"`
	SalePrice     float64 `json:"sale_price" binding:"min=0"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	MinStockLevel int     `json:"min_stock_level" binding:"min=0"`
	Unit          string  `json:"unit"`
	Category      *string `json:"category"`
}

// UpdateProductRequest represents the update product request body. Omitted
// fields are left unchanged.
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	CostPrice     *float64 `json:"cost_price"`
	SalePrice     *float64 `json:"sale_price"`
	StockQuantity *int     `json:"stock_quantity"`
	MinStockLevel *int     `json:"min_stock_level"`
	Unit          *string  `json:"unit"`
	Category      *string  `json:"category"`
	IsActive      *bool    `json:"is_active"`
}

// AdjustStockRequest represents a manual stock change request. For STOCK_IN
// and STOCK_OUT the quantity is the amount moved; for ADJUSTMENT it is the
// counted target quantity, zero included, so quantity carries no required tag.
type AdjustStockRequest struct {
	Type     string `json:"type" binding:"required"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}
