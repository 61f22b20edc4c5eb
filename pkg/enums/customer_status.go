package enums

import "fmt"

// CustomerStatus gates whether a customer may sign in.
type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusBlocked CustomerStatus = "blocked"
)

var validCustomerStatuses = []CustomerStatus{
	CustomerStatusActive,
	CustomerStatusBlocked,
}

// String implements fmt.Stringer.
func (v CustomerStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known CustomerStatus.
func (v CustomerStatus) IsValid() bool {
	for _, candidate := range validCustomerStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseCustomerStatus converts raw input into a CustomerStatus.
func ParseCustomerStatus(value string) (CustomerStatus, error) {
	for _, candidate := range validCustomerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer status %q", value)
}
