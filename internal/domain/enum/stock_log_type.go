package enum

import "database/sql/driver"

// StockLogType is the closed set of stock-change event types. Every change to
// a product's quantity is recorded in the stock ledger under exactly one of
// these, so exhaustive handling is checkable at compile time instead of
// matching free-form strings.
type StockLogType string

const (
	StockLogTypeStockIn    StockLogType = "STOCK_IN"
	StockLogTypeStockOut   StockLogType = "STOCK_OUT"
	StockLogTypeAdjustment StockLogType = "ADJUSTMENT"
	StockLogTypeSale       StockLogType = "SALE"
	StockLogTypePurchase   StockLogType = "PURCHASE"
	StockLogTypeReturn     StockLogType = "RETURN"
)

// IsValid reports whether t is one of the defined stock log types
func (t StockLogType) IsValid() bool {
	switch t {
	case StockLogTypeStockIn, StockLogTypeStockOut, StockLogTypeAdjustment,
		StockLogTypeSale, StockLogTypePurchase, StockLogTypeReturn:
		return true
	}
	return false
}

// IsAdjustable reports whether t is allowed on the manual stock-adjustment
// endpoint. SALE, PURCHASE and RETURN entries are only written by their
// owning flows.
func (t StockLogType) IsAdjustable() bool {
	switch t {
	case StockLogTypeStockIn, StockLogTypeStockOut, StockLogTypeAdjustment:
		return true
	}
	return false
}

func (t StockLogType) String() string {
	return string(t)
}

func (t StockLogType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *StockLogType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = StockLogType(v)
	case []byte:
		*t = StockLogType(v)
	}
	return nil
}
