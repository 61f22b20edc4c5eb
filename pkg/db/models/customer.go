package models

import (
	"strings"

	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// Customer is a shopper account. Password holds an opaque credential: an argon2id
// hash for accounts created here, or a legacy plain value from seeded data.
type Customer struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Password    string               `json:"password,omitempty"`
	OrdersCount int                  `json:"ordersCount"`
	DateJoined  string               `json:"dateJoined"`
	Avatar      string               `json:"avatar"`
	Status      enums.CustomerStatus `json:"status"`
	Coins       int64                `json:"coins"`

	// SocialProvider is set on accounts created through a social login; only
	// that provider may sign them in.
	SocialProvider enums.SocialProvider `json:"socialProvider,omitempty"`
}

func (c Customer) IsBlocked() bool {
	return c.Status == enums.CustomerStatusBlocked
}

// MatchesIdentifier compares an email case-insensitively or a phone number exactly.
func (c Customer) MatchesIdentifier(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	return strings.EqualFold(c.Email, identifier) || c.Phone == identifier
}
