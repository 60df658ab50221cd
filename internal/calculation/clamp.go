package calculation

import (
	"math"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// Input ranges applied at the calculator boundary.
const (
	MinAnnualReturnPct = -50.0
	MaxAnnualReturnPct = 50.0
	MaxYears           = 80.0
	MaxAmount          = 100000.0
	MaxMonths          = int(MaxYears) * 12
)

// Clamp bounds v to [lo, hi]. NaN counts as 0 before clamping and infinities
// saturate at the nearest bound.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Min(hi, math.Max(lo, v))
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

// NonNegative floors v at zero and maps NaN to zero. +Inf is kept.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// ClampReturnPct bounds an annual return percentage to the supported range.
func ClampReturnPct(pct float64) float64 {
	return Clamp(pct, MinAnnualReturnPct, MaxAnnualReturnPct)
}

// ClampYears bounds a term in years to the supported range.
func ClampYears(years float64) float64 {
	return Clamp(years, 0, MaxYears)
}

// ClampMonths bounds a term in months to [0, MaxMonths].
func ClampMonths(months int) int {
	return ClampInt(months, 0, MaxMonths)
}

// ClampProjection bounds the return and term of a raw projection input so the
// growth factor stays finite.
func ClampProjection(in domain.ProjectionInput) domain.ProjectionInput {
	in.AnnualReturnPct = ClampReturnPct(in.AnnualReturnPct)
	in.Months = ClampMonths(in.Months)
	return in
}
