package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

// Source exposes the display currency a caller has selected.
type Source interface {
	Currency() enums.Currency
}

// Service converts base-currency (BDT) amounts for display. Conversion never
// feeds back into stored amounts.
type Service struct {
	rate    decimal.Decimal
	printer *message.Printer
}

// NewService builds a converter for a fixed BDT-per-USD rate.
func NewService(exchangeRate int64) (*Service, error) {
	if exchangeRate <= 0 {
		return nil, fmt.Errorf("exchange rate must be positive")
	}
	return &Service{
		rate:    decimal.NewFromInt(exchangeRate),
		printer: message.NewPrinter(language.English),
	}, nil
}

func (s *Service) ExchangeRate() decimal.Decimal {
	return s.rate
}

// Convert expresses a base amount in c.
func (s *Service) Convert(amount decimal.Decimal, c enums.Currency) decimal.Decimal {
	if c == enums.CurrencyUSD {
		return amount.Div(s.rate)
	}
	return amount
}

// Format renders amount (in base currency) in c: BDT as a grouped value with at
// most two fraction digits, USD converted and fixed to two decimals.
func (s *Service) Format(amount decimal.Decimal, c enums.Currency) string {
	if !c.IsValid() {
		c = enums.CurrencyBDT
	}
	value := s.Convert(amount, c)
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	whole, frac, _ := strings.Cut(value.StringFixed(2), ".")
	if c != enums.CurrencyUSD {
		frac = strings.TrimRight(frac, "0")
	}
	digits := s.group(whole)
	if frac != "" {
		digits += "." + frac
	}
	return sign + c.Symbol() + digits
}

// group inserts thousands separators into a non-negative integer string. Values
// past int64 are grouped by hand in the same en layout.
func (s *Service) group(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return s.printer.Sprint(number.Decimal(n))
	}
	head := len(whole) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(whole[:head])
	for i := head; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// FormatInt is Format for whole base amounts such as product prices.
func (s *Service) FormatInt(amount int64, c enums.Currency) string {
	return s.Format(decimal.NewFromInt(amount), c)
}

// FormatFor formats amount in the currency src has selected.
func (s *Service) FormatFor(amount decimal.Decimal, src Source) string {
	c := enums.CurrencyBDT
	if src != nil {
		c = src.Currency()
	}
	return s.Format(amount, c)
}
