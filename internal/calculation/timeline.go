package calculation

import (
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/pkg/dateutil"
)

// Timeline steps through a phased schedule month by month at the nominal rate
// and records the balance after every completed year. Paid-in starts at the
// phase-1 initial balance. Year numbering runs on across the phase boundary.
func (ps *PhaseScheduler) Timeline(in domain.PhasedScheduleInput) []domain.YearlySnapshot {
	phases := []domain.ProjectionInput{in.Phase1}
	if in.Phase2Enabled && in.Phase2.Months > 0 {
		phases = append(phases, in.Phase2)
	}

	total := 0
	for _, p := range phases {
		total += max(0, p.Months)
	}
	snapshots := make([]domain.YearlySnapshot, 0, dateutil.CompletedYears(total))

	balance := NonNegative(in.Phase1.InitialBalance)
	paidIn := balance
	month := 0
	for _, p := range phases {
		rate := MonthlyRate(p.AnnualReturnPct, domain.RateConventionNominal)
		contribution := NonNegative(p.MonthlyContribution)
		for range max(0, p.Months) {
			balance = balance*(1+rate) + contribution
			paidIn += contribution
			month++
			if month%dateutil.MonthsPerYear == 0 {
				snapshots = append(snapshots, domain.YearlySnapshot{
					Year:             month / dateutil.MonthsPerYear,
					CumulativePaidIn: paidIn,
					EndOfYearBalance: balance,
				})
			}
		}
	}
	return snapshots
}
