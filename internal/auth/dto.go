package auth

import (
	"time"

	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the customer login endpoint.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// SignupRequest captures a new customer account.
type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// SocialAccount is the normalized profile a social provider hands back.
type SocialAccount struct {
	Provider enums.SocialProvider `json:"provider" validate:"required"`
	Name     string               `json:"name" validate:"required"`
	Email    string               `json:"email" validate:"required,email"`
	Avatar   string               `json:"avatar" validate:"omitempty,url"`
}

// AdminLoginRequest carries the admin credentials and, when 2FA is on, the one-time code.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTPCode  string `json:"otpCode"`
}

// CustomerDTO is the customer as returned to the shopper, without credentials.
type CustomerDTO struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Avatar      string               `json:"avatar"`
	OrdersCount int                  `json:"ordersCount"`
	DateJoined  string               `json:"dateJoined"`
	Status      enums.CustomerStatus `json:"status"`
	Coins       int64                `json:"coins"`
}

func FromCustomer(c models.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Avatar:      c.Avatar,
		OrdersCount: c.OrdersCount,
		DateJoined:  c.DateJoined,
		Status:      c.Status,
		Coins:       c.Coins,
	}
}

// AdminLoginResponse holds the admin session token.
type AdminLoginResponse struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Profile     models.AdminProfile `json:"profile"`
}
