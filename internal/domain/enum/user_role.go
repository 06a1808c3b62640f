package enum

import "database/sql/driver"

// UserRole is the closed set of actor roles.
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleCashier UserRole = "CASHIER"
)

// IsValid reports whether r is one of the defined roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCashier:
		return true
	}
	return false
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	}
	return nil
}
