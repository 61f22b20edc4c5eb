package enums

import "fmt"

// SocialProvider names the identity providers offered on the login screens.
type SocialProvider string

const (
	SocialProviderGoogle   SocialProvider = "google"
	SocialProviderFacebook SocialProvider = "facebook"
)

var validSocialProviders = []SocialProvider{
	SocialProviderGoogle,
	SocialProviderFacebook,
}

// String implements fmt.Stringer.
func (v SocialProvider) String() string {
	return string(v)
}

// IsValid reports whether the value is a known SocialProvider.
func (v SocialProvider) IsValid() bool {
	for _, candidate := range validSocialProviders {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseSocialProvider converts raw input into a SocialProvider.
func ParseSocialProvider(value string) (SocialProvider, error) {
	for _, candidate := range validSocialProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid social provider %q", value)
}
