package enums

import "fmt"

// LoginFailure explains why a credential check was rejected.
type LoginFailure string

const (
	LoginFailureNoAccount     LoginFailure = "no_account"
	LoginFailureWrongPassword LoginFailure = "wrong_password"
	LoginFailureBlocked       LoginFailure = "blocked"

	// LoginFailureProviderMismatch rejects a social login for an account the
	// provider did not create.
	LoginFailureProviderMismatch LoginFailure = "provider_mismatch"
)

var validLoginFailures = []LoginFailure{
	LoginFailureNoAccount,
	LoginFailureWrongPassword,
	LoginFailureBlocked,
	LoginFailureProviderMismatch,
}

// String implements fmt.Stringer.
func (v LoginFailure) String() string {
	return string(v)
}

// IsValid reports whether the value is a known LoginFailure.
func (v LoginFailure) IsValid() bool {
	for _, candidate := range validLoginFailures {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseLoginFailure converts raw input into a LoginFailure.
func ParseLoginFailure(value string) (LoginFailure, error) {
	for _, candidate := range validLoginFailures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid login failure %q", value)
}
