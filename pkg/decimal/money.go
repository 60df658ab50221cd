package decimal

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol is the single currency every amount is denominated in.
const CurrencySymbol = "€"

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// FromFloat converts a float projection result to Money. Non-finite values,
// which decimal.NewFromFloat would panic on, map to zero.
func FromFloat(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the plain two-decimal representation used in CSV and JSON output.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the German way, e.g. "1.234,56 €".
func (m Money) Format() string {
	return FormatGerman(m.Round().InexactFloat64(), 2) + " " + CurrencySymbol
}

// FormatWhole renders the amount without cents, e.g. "12.345 €".
func (m Money) FormatWhole() string {
	return FormatGerman(m.Decimal.Round(0).InexactFloat64(), 0) + " " + CurrencySymbol
}

// FormatGerman prints v with German digit grouping and decimal comma.
func FormatGerman(v float64, decimals int) string {
	p := message.NewPrinter(language.German)
	return p.Sprint(number.Decimal(v, number.Scale(decimals)))
}
