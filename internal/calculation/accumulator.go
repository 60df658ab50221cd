package calculation

import (
	"math"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// zeroRateEpsilon is the monthly rate below which growth is ignored.
const zeroRateEpsilon = 1e-12

// MonthlyRate converts an annual percentage to the per-month rate under the
// given convention.
func MonthlyRate(annualReturnPct float64, convention domain.RateConvention) float64 {
	r := annualReturnPct / 100
	if convention == domain.RateConventionEffective {
		return math.Pow(1+r, 1.0/12) - 1
	}
	return r / 12
}

// FutureValue projects a balance forward over in.Months months with the
// contribution paid at the end of each month and a nominal monthly rate.
// Negative balances and contributions count as zero. The rate is not bounded
// here; callers clamp it.
func FutureValue(in domain.ProjectionInput) float64 {
	initial := NonNegative(in.InitialBalance)
	p := NonNegative(in.MonthlyContribution)
	n := in.Months
	if n <= 0 {
		return initial
	}

	i := MonthlyRate(in.AnnualReturnPct, domain.RateConventionNominal)
	if math.Abs(i) < zeroRateEpsilon {
		return initial + p*float64(n)
	}

	growth := math.Pow(1+i, float64(n))
	return initial*growth + p*((growth-1)/i)
}
