package models

// AdminProfile is the single administrator record edited from store settings.
type AdminProfile struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Address          string `json:"address"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled,omitempty"`
	TwoFactorSecret  string `json:"twoFactorSecret,omitempty"`
}

// SocialSettings toggles the social login providers and carries their client credentials.
type SocialSettings struct {
	GoogleEnabled      bool   `json:"google_enabled"`
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	FacebookEnabled    bool   `json:"facebook_enabled"`
	FacebookAppID      string `json:"facebook_app_id"`
	FacebookAppSecret  string `json:"facebook_app_secret"`
}
