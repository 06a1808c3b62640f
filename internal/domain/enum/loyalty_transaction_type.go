package enum

import "database/sql/driver"

// LoyaltyTransactionType distinguishes accruals from redemptions in the
// customer loyalty ledger.
type LoyaltyTransactionType string

const (
	LoyaltyTransactionTypeEarned   LoyaltyTransactionType = "EARNED"
	LoyaltyTransactionTypeRedeemed LoyaltyTransactionType = "REDEEMED"
)

// IsValid reports whether t is one of the defined loyalty transaction types
func (t LoyaltyTransactionType) IsValid() bool {
	switch t {
	case LoyaltyTransactionTypeEarned, LoyaltyTransactionTypeRedeemed:
		return true
	}
	return false
}

func (t LoyaltyTransactionType) String() string {
	return string(t)
}

func (t LoyaltyTransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *LoyaltyTransactionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = LoyaltyTransactionType(v)
	case []byte:
		*t = LoyaltyTransactionType(v)
	}
	return nil
}
