package enums

import "fmt"

// CheckInState is the derived state of the daily coin check-in.
type CheckInState string

const (
	CheckInStateClaimable   CheckInState = "claimable"
	CheckInStateCoolingDown CheckInState = "cooling_down"
)

var validCheckInStates = []CheckInState{
	CheckInStateClaimable,
	CheckInStateCoolingDown,
}

// String implements fmt.Stringer.
func (v CheckInState) String() string {
	return string(v)
}

// IsValid reports whether the value is a known CheckInState.
func (v CheckInState) IsValid() bool {
	for _, candidate := range validCheckInStates {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseCheckInState converts raw input into a CheckInState.
func ParseCheckInState(value string) (CheckInState, error) {
	for _, candidate := range validCheckInStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid check-in state %q", value)
}
