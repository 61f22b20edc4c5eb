package auth

import (
	"errors"

	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// LoginError is the typed outcome of a rejected customer login.
type LoginError struct {
	Reason enums.LoginFailure
}

func (e *LoginError) Error() string {
	switch e.Reason {
	case enums.LoginFailureNoAccount:
		return "no account found for this email or phone"
	case enums.LoginFailureWrongPassword:
		return "incorrect password"
	case enums.LoginFailureBlocked:
		return "this account has been blocked"
	case enums.LoginFailureProviderMismatch:
		return "this account is not linked to the social provider"
	}
	return "login failed"
}

// LoginFailureOf extracts the failure reason from err, if it is a LoginError.
func LoginFailureOf(err error) (enums.LoginFailure, bool) {
	var le *LoginError
	if errors.As(err, &le) {
		return le.Reason, true
	}
	return "", false
}
