package calculation

import (
	"iter"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/pkg/dateutil"
)

// SnapshotProjector steps a balance month by month and records the state at
// the end of every completed year.
type SnapshotProjector struct {
	// DefaultConvention applies when the input does not name one.
	DefaultConvention domain.RateConvention
}

// NewSnapshotProjector creates a projector using the effective monthly rate.
func NewSnapshotProjector() *SnapshotProjector {
	return &SnapshotProjector{DefaultConvention: domain.RateConventionEffective}
}

type projection struct {
	start   float64
	monthly float64
	months  int
	rate    float64
	pct     float64
	conv    domain.RateConvention
}

func (sp *SnapshotProjector) normalize(in domain.YieldInput) projection {
	conv := in.Convention
	if conv == "" {
		conv = sp.DefaultConvention
	}
	if conv == "" {
		conv = domain.RateConventionEffective
	}
	pct := ClampReturnPct(in.AnnualReturnPct)
	return projection{
		start:   NonNegative(in.InitialBalance),
		monthly: NonNegative(in.MonthlyContribution),
		months:  dateutil.MonthsFromYears(ClampYears(in.Years)),
		rate:    MonthlyRate(pct, conv),
		pct:     pct,
		conv:    conv,
	}
}

// walk runs the month loop, calling yield after each completed year. It
// returns the final balance and paid-in total, or ok=false when yield stopped it.
func (p projection) walk(yield func(domain.YearlySnapshot) bool) (balance, paidIn float64, ok bool) {
	balance = p.start
	paidIn = p.start
	for m := 1; m <= p.months; m++ {
		balance *= 1 + p.rate
		balance += p.monthly
		paidIn += p.monthly
		if m%dateutil.MonthsPerYear == 0 && yield != nil {
			snap := domain.YearlySnapshot{
				Year:             m / dateutil.MonthsPerYear,
				CumulativePaidIn: paidIn,
				EndOfYearBalance: balance,
			}
			if !yield(snap) {
				return balance, paidIn, false
			}
		}
	}
	return balance, paidIn, true
}

// Snapshots returns the yearly checkpoints in chronological order. The
// sequence is computed lazily on each iteration and holds no shared state.
func (sp *SnapshotProjector) Snapshots(in domain.YieldInput) iter.Seq[domain.YearlySnapshot] {
	p := sp.normalize(in)
	return func(yield func(domain.YearlySnapshot) bool) {
		p.walk(yield)
	}
}

// Project returns the final balance, the amount paid in (starting balance
// included), the profit and every yearly snapshot.
func (sp *SnapshotProjector) Project(in domain.YieldInput) domain.YieldResult {
	p := sp.normalize(in)

	snapshots := make([]domain.YearlySnapshot, 0, dateutil.CompletedYears(p.months))
	balance, paidIn, _ := p.walk(func(s domain.YearlySnapshot) bool {
		snapshots = append(snapshots, s)
		return true
	})

	return domain.YieldResult{
		FinalBalance:    balance,
		TotalPaidIn:     paidIn,
		Profit:          balance - paidIn,
		Months:          p.months,
		AnnualReturnPct: p.pct,
		Convention:      p.conv,
		Snapshots:       snapshots,
	}
}
