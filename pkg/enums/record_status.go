package enums

import "fmt"

// RecordStatus marks whether a catalog product or category is visible to shoppers.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

var validRecordStatuses = []RecordStatus{
	RecordStatusActive,
	RecordStatusInactive,
}

// String implements fmt.Stringer.
func (v RecordStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known RecordStatus.
func (v RecordStatus) IsValid() bool {
	for _, candidate := range validRecordStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	for _, candidate := range validRecordStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", value)
}
