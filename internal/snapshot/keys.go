package snapshot

import "strings"

// Catalog collection keys.
const (
	KeyProducts       = "db_products"
	KeyCategories     = "db_categories"
	KeyOrders         = "db_orders"
	KeyCustomers      = "db_customers"
	KeySiteMedia      = "db_site_media"
	KeyMediaLibrary   = "db_media_library"
	KeyAdminProfile   = "db_admin_profile"
	KeySocialSettings = "db_social_settings"
)

// Per-session keys, combined with a session id by SessionKey.
const (
	SessionCart        = "cart"
	SessionWishlist    = "wishlist"
	SessionUser        = "user_session"
	SessionAdmin       = "admin_session"
	SessionCurrency    = "currency"
	SessionCoins       = "user_coins"
	SessionLastClaim   = "last_coin_claim_time"
	SessionMissions    = "missions"
	SessionCurrentUser = "current_user"
	SessionRememberMe  = "public_remember_me"
)

const sessionKeyPrefix = "session"

// SessionKey namespaces a session field under its session id.
func SessionKey(sessionID, name string) string {
	return sessionKeyPrefix + ":" + sessionID + ":" + name
}

// KeyLabel collapses session keys to their field name so metric labels stay bounded.
func KeyLabel(key string) string {
	if !strings.HasPrefix(key, sessionKeyPrefix+":") {
		return key
	}
	if idx := strings.LastIndex(key, ":"); idx >= 0 {
		return sessionKeyPrefix + ":" + key[idx+1:]
	}
	return key
}
