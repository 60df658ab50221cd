package calculation

import (
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/pkg/dateutil"
)

// Early-start plan parameters. The state pays from age 6 until the 18th
// birthday, which fixes phase 1 at 144 months.
const (
	EarlyStartAge      = 6
	EarlyStartEndAge   = 18
	MaxMonthlyState    = 10.0
	MinBirthYear       = 1900
	MaxBirthYear       = 2100
	MaxTargetAge       = 100
	DefaultTargetAge   = 67
	DefaultStateAmount = 10.0
)

// PhaseScheduler chains a subsidised phase and an optional private phase.
type PhaseScheduler struct{}

// NewPhaseScheduler creates a new phase scheduler
func NewPhaseScheduler() *PhaseScheduler {
	return &PhaseScheduler{}
}

// Schedule runs phase 1 from its own initial balance and, when enabled,
// phase 2 from the balance phase 1 reached. A disabled or empty phase 2
// leaves the phase-1 balance untouched.
func (ps *PhaseScheduler) Schedule(in domain.PhasedScheduleInput) domain.PhasedScheduleResult {
	p1 := in.Phase1
	p1.Months = max(0, p1.Months)
	phase1Balance := FutureValue(p1)

	res := domain.PhasedScheduleResult{
		Phase1Balance: phase1Balance,
		FinalBalance:  phase1Balance,
		Phase1PaidIn:  p1.PaidIn(),
		Phase1Months:  p1.Months,
	}
	if !in.Phase2Enabled || in.Phase2.Months <= 0 {
		return res
	}

	p2 := in.Phase2
	p2.InitialBalance = phase1Balance
	res.FinalBalance = FutureValue(p2)
	res.Phase2PaidIn = p2.PaidIn()
	res.Phase2Months = p2.Months
	return res
}

// EarlyStart computes the children's savings plan: state plus private money
// from age 6 to 18, optionally followed by private saving up to the target age.
func (ps *PhaseScheduler) EarlyStart(in domain.EarlyStartInput) domain.EarlyStartResult {
	birthYear := ClampInt(in.BirthYear, MinBirthYear, MaxBirthYear)
	state := Clamp(in.MonthlyState, 0, MaxMonthlyState)
	private := Clamp(in.MonthlyPrivate, 0, MaxAmount)
	rate := ClampReturnPct(in.AnnualReturnPct)

	targetAge := in.TargetAge
	if targetAge == 0 {
		targetAge = EarlyStartEndAge
	}
	targetAge = ClampInt(targetAge, EarlyStartEndAge, MaxTargetAge)

	phase1Months := dateutil.MonthsBetweenAges(EarlyStartAge, EarlyStartEndAge)
	var phase2Months int
	var privateAfter float64
	if in.ContinueAfter18 {
		phase2Months = dateutil.MonthsBetweenAges(EarlyStartEndAge, targetAge)
		privateAfter = Clamp(in.PrivateAfter18, 0, MaxAmount)
	}

	sched := ps.Schedule(domain.PhasedScheduleInput{
		Phase1: domain.ProjectionInput{
			MonthlyContribution: state + private,
			Months:              phase1Months,
			AnnualReturnPct:     rate,
		},
		Phase2: domain.ProjectionInput{
			MonthlyContribution: privateAfter,
			Months:              phase2Months,
			AnnualReturnPct:     rate,
		},
		Phase2Enabled: in.ContinueAfter18,
	})

	return domain.EarlyStartResult{
		BirthYear:               birthYear,
		StartAge:                EarlyStartAge,
		EndAge:                  EarlyStartEndAge,
		StartYear:               dateutil.YearAtAge(birthYear, EarlyStartAge),
		EndYear:                 dateutil.YearAtAge(birthYear, EarlyStartEndAge),
		AnnualReturnPct:         rate,
		MonthlyState:            state,
		MonthlyPrivate:          private,
		TotalMonthly:            state + private,
		TotalStatePaid:          state * float64(phase1Months),
		TotalPrivatePaid:        private * float64(phase1Months),
		ContinueAfter18:         in.ContinueAfter18,
		TargetAge:               targetAge,
		PrivateAfter18:          privateAfter,
		TotalPrivatePaidAfter18: privateAfter * float64(phase2Months),
		CapitalAt18:             sched.Phase1Balance,
		CapitalAtTarget:         sched.FinalBalance,
		Schedule:                sched,
	}
}
