package enums

import "fmt"

// Currency represents the display currencies offered by the storefront.
type Currency string

const (
	CurrencyBDT Currency = "BDT"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = []Currency{
	CurrencyBDT,
	CurrencyUSD,
}

// String implements fmt.Stringer.
func (v Currency) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Currency.
func (v Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseCurrency converts raw input into a Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}

// Symbol returns the glyph prefixed to formatted prices.
func (v Currency) Symbol() string {
	switch v {
	case CurrencyUSD:
		return "$"
	default:
		return "৳"
	}
}
