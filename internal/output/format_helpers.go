package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	money "github.com/vorsorge/vorsorge-rechner/pkg/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as EUR with 2 decimals, German style.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatAmount formats a float projection result as EUR. NaN and infinities print as zero.
func FormatAmount(amount float64) string { return money.FromFloat(amount).Format() }

// FormatWholeAmount formats a float projection result as whole EUR, e.g. "12.345 €".
func FormatWholeAmount(amount float64) string { return money.FromFloat(amount).FormatWhole() }

// FormatPercentage formats a percent value (6 means 6 %) with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string {
	return money.FormatGerman(pct.Round(2).InexactFloat64(), 2) + " %"
}

// FormatRate formats a fraction (0.3 means 30 %) as a percentage.
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimalHundred))
}

// FormatPercentFloat formats a float percent value such as an annual return.
func FormatPercentFloat(pct float64) string {
	return FormatPercentage(money.FromFloat(pct).Decimal)
}

// fixed2 renders a float with two decimals and a dot for machine-readable output.
func fixed2(v float64) string { return money.FromFloat(v).String() }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
