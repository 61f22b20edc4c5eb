package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Subject   string
	SessionID string
	Role      enums.ActorRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	SessionID string          `json:"sid,omitempty"`
	Role      enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
