package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/pkg/dateutil"
	money "github.com/vorsorge/vorsorge-rechner/pkg/decimal"
)

// CalculationEngine orchestrates all savings calculations. Every method is a
// pure recomputation from its input; the engine holds configuration only.
type CalculationEngine struct {
	SubsidyCalc *SubsidyCalculator
	Scheduler   *PhaseScheduler
	Projector   *SnapshotProjector
	Debug       bool // Enable debug output for detailed calculations
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine with the default rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultSubsidyRules())
}

// NewCalculationEngineWithRules creates a new calculation engine with configurable subsidy rules
func NewCalculationEngineWithRules(rules domain.SubsidyRules) *CalculationEngine {
	return &CalculationEngine{
		SubsidyCalc: NewSubsidyCalculatorWithRules(rules),
		Scheduler:   NewPhaseScheduler(),
		Projector:   NewSnapshotProjector(),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Rules returns the subsidy rules in effect.
func (ce *CalculationEngine) Rules() domain.SubsidyRules {
	return ce.SubsidyCalc.Rules
}

// CalculateSubsidy returns the subsidy breakdown for an annual own contribution
func (ce *CalculationEngine) CalculateSubsidy(in domain.ContributionInput) domain.SubsidyResult {
	res := ce.SubsidyCalc.Calculate(in)
	if ce.Debug {
		ce.Logger.Debugf("subsidy: own=%s eligible=%s tier1=%s tier2=%s children=%d child=%s total=%s",
			res.OwnContribution.StringFixed(2), res.EligibleAmount.StringFixed(2),
			res.Tier1Subsidy.StringFixed(2), res.Tier2Subsidy.StringFixed(2),
			res.ChildCount, res.ChildSubsidyTotal.StringFixed(2), res.TotalSubsidy.StringFixed(2))
	}
	return res
}

// FutureValue projects a single contribution regime with the nominal monthly rate
func (ce *CalculationEngine) FutureValue(in domain.ProjectionInput) float64 {
	return FutureValue(in)
}

// Schedule runs a two-phase contribution chain
func (ce *CalculationEngine) Schedule(in domain.PhasedScheduleInput) domain.PhasedScheduleResult {
	return ce.Scheduler.Schedule(in)
}

// CalculateYield runs the snapshot projector
func (ce *CalculationEngine) CalculateYield(in domain.YieldInput) domain.YieldResult {
	res := ce.Projector.Project(in)
	if ce.Debug {
		ce.Logger.Debugf("yield: months=%d rate=%.2f%% (%s) final=%.2f paid=%.2f",
			res.Months, res.AnnualReturnPct, res.Convention, res.FinalBalance, res.TotalPaidIn)
	}
	return res
}

// CalculateEarlyStart runs the children's savings plan
func (ce *CalculationEngine) CalculateEarlyStart(in domain.EarlyStartInput) domain.EarlyStartResult {
	res := ce.Scheduler.EarlyStart(in)
	if ce.Debug {
		ce.Logger.Debugf("early start: born=%d monthly=%.2f capital@18=%.2f capital@%d=%.2f",
			res.BirthYear, res.TotalMonthly, res.CapitalAt18, res.TargetAge, res.CapitalAtTarget)
	}
	return res
}

// CalculatePensionPlan combines the subsidy with a projection of the whole
// contract flow. The one-off bonus enters as the starting balance.
func (ce *CalculationEngine) CalculatePensionPlan(in domain.PensionPlanInput) domain.PensionPlanResult {
	rules := ce.Rules()

	amount := money.NewMoneyFromDecimal(clampDecimal(in.Amount, decimal.Zero, rules.MaxOwnAmount))
	annual := amount.Decimal
	if in.InputMode != domain.InputModeYearly {
		annual = amount.Annual().Decimal
	}

	sub := ce.CalculateSubsidy(domain.ContributionInput{
		AnnualAmount:     annual,
		ChildCount:       in.ChildCount,
		RateTier:         in.RateTier,
		EarlyCareerBonus: in.EarlyCareerBonus,
	})

	monthlyOwn := money.NewMoneyFromDecimal(sub.OwnContribution).Monthly().Decimal
	monthlySubsidy := money.NewMoneyFromDecimal(sub.TotalSubsidy).Monthly().Decimal
	monthlyTotal := money.NewMoneyFromDecimal(sub.TotalIntoContract).Monthly().Decimal

	months := dateutil.MonthsFromYears(ClampYears(in.Years))
	rate := ClampReturnPct(in.AnnualReturnPct)
	bonus := sub.OneOffBonus.InexactFloat64()

	final := FutureValue(domain.ProjectionInput{
		InitialBalance:      bonus,
		MonthlyContribution: monthlyTotal.InexactFloat64(),
		Months:              months,
		AnnualReturnPct:     rate,
	})

	n := decimal.NewFromInt(int64(months))
	ownPaid := monthlyOwn.Mul(n).InexactFloat64()
	subsidyPaid := monthlySubsidy.Mul(n).InexactFloat64() + bonus
	totalPaid := ownPaid + subsidyPaid

	if ce.Debug {
		ce.Logger.Debugf("pension plan: annual=%s months=%d rate=%.2f%% final=%.2f",
			annual.StringFixed(2), months, rate, final)
	}

	return domain.PensionPlanResult{
		Subsidy:         sub,
		MonthlyOwn:      monthlyOwn,
		MonthlySubsidy:  monthlySubsidy,
		MonthlyTotal:    monthlyTotal,
		Months:          months,
		AnnualReturnPct: rate,
		OwnPaidIn:       ownPaid,
		SubsidyPaidIn:   subsidyPaid,
		TotalPaidIn:     totalPaid,
		FinalCapital:    final,
		Profit:          final - totalPaid,
	}
}

// RunScenario calculates one configured scenario. The configuration's rules
// replace the engine's for the duration of the call.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine := ce
	if config != nil && config.Rules != nil {
		engine = &CalculationEngine{
			SubsidyCalc: NewSubsidyCalculatorWithRules(*config.Rules),
			Scheduler:   ce.Scheduler,
			Projector:   ce.Projector,
			Debug:       ce.Debug,
			Logger:      ce.Logger,
		}
	}

	summary := &domain.ScenarioSummary{Name: scenario.Name, Kind: scenario.Kind}
	missing := func() error {
		return fmt.Errorf("scenario %q: %s block is missing", scenario.Name, scenario.Kind)
	}

	switch scenario.Kind {
	case domain.ScenarioPensionPlan:
		if scenario.PensionPlan == nil {
			return nil, missing()
		}
		res := engine.CalculatePensionPlan(*scenario.PensionPlan)
		summary.PensionPlan = &res
		summary.FinalCapital = res.FinalCapital
		summary.TotalPaidIn = res.TotalPaidIn
		summary.OwnPaidIn = res.OwnPaidIn
		summary.Profit = res.Profit
		summary.Months = res.Months
		summary.Timeline = engine.Scheduler.Timeline(domain.PhasedScheduleInput{
			Phase1: domain.ProjectionInput{
				InitialBalance:      res.Subsidy.OneOffBonus.InexactFloat64(),
				MonthlyContribution: res.MonthlyTotal.InexactFloat64(),
				Months:              res.Months,
				AnnualReturnPct:     res.AnnualReturnPct,
			},
		})

	case domain.ScenarioEarlyStart:
		if scenario.EarlyStart == nil {
			return nil, missing()
		}
		res := engine.CalculateEarlyStart(*scenario.EarlyStart)
		summary.EarlyStart = &res
		summary.FinalCapital = res.CapitalAtTarget
		summary.TotalPaidIn = res.TotalPaidIn()
		summary.OwnPaidIn = res.TotalPrivatePaid + res.TotalPrivatePaidAfter18
		summary.Profit = res.CapitalAtTarget - res.TotalPaidIn()
		summary.Months = res.Schedule.Phase1Months + res.Schedule.Phase2Months
		summary.Timeline = engine.Scheduler.Timeline(domain.PhasedScheduleInput{
			Phase1: domain.ProjectionInput{
				MonthlyContribution: res.TotalMonthly,
				Months:              res.Schedule.Phase1Months,
				AnnualReturnPct:     res.AnnualReturnPct,
			},
			Phase2: domain.ProjectionInput{
				MonthlyContribution: res.PrivateAfter18,
				Months:              res.Schedule.Phase2Months,
				AnnualReturnPct:     res.AnnualReturnPct,
			},
			Phase2Enabled: res.ContinueAfter18,
		})

	case domain.ScenarioYield:
		if scenario.Yield == nil {
			return nil, missing()
		}
		res := engine.CalculateYield(*scenario.Yield)
		summary.Yield = &res
		summary.FinalCapital = res.FinalBalance
		summary.TotalPaidIn = res.TotalPaidIn
		summary.OwnPaidIn = res.TotalPaidIn
		summary.Profit = res.Profit
		summary.Months = res.Months
		summary.Timeline = res.Snapshots

	case domain.ScenarioFutureValue:
		if scenario.FutureValue == nil {
			return nil, missing()
		}
		in := *scenario.FutureValue
		final := engine.FutureValue(in)
		paid := NonNegative(in.InitialBalance) + in.PaidIn()
		summary.FinalCapital = final
		summary.TotalPaidIn = paid
		summary.OwnPaidIn = paid
		summary.Profit = final - paid
		summary.Months = max(0, in.Months)
		summary.Timeline = engine.Scheduler.Timeline(domain.PhasedScheduleInput{Phase1: in})

	case domain.ScenarioPhased:
		if scenario.Phased == nil {
			return nil, missing()
		}
		in := *scenario.Phased
		res := engine.Schedule(in)
		paid := NonNegative(in.Phase1.InitialBalance) + res.Phase1PaidIn + res.Phase2PaidIn
		summary.Phased = &res
		summary.FinalCapital = res.FinalBalance
		summary.TotalPaidIn = paid
		summary.OwnPaidIn = paid
		summary.Profit = res.FinalBalance - paid
		summary.Months = res.Phase1Months + res.Phase2Months
		summary.Timeline = engine.Scheduler.Timeline(in)

	case domain.ScenarioSubsidy:
		if scenario.Subsidy == nil {
			return nil, missing()
		}
		res := engine.CalculateSubsidy(*scenario.Subsidy)
		summary.Subsidy = &res
		summary.FinalCapital = res.TotalIntoContract.InexactFloat64()
		summary.TotalPaidIn = res.TotalIntoContract.InexactFloat64()
		summary.OwnPaidIn = res.OwnContribution.InexactFloat64()
		summary.Months = dateutil.MonthsPerYear

	default:
		return nil, fmt.Errorf("scenario %q: %w: %q", scenario.Name, domain.ErrUnknownScenarioKind, scenario.Kind)
	}

	engine.Logger.Infof("scenario %q (%s): final capital %.2f", summary.Name, summary.Kind, summary.FinalCapital)
	return summary, nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))

	for i := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
	}

	rules := ce.Rules()
	if config.Rules != nil {
		rules = *config.Rules
	}
	return &domain.ScenarioComparison{
		Scenarios:   scenarios,
		Rules:       rules,
		Assumptions: ce.GenerateAssumptions(rules),
	}, nil
}

// GenerateAssumptions lists the modelling assumptions behind every result.
func (ce *CalculationEngine) GenerateAssumptions(rules domain.SubsidyRules) []string {
	conv := ce.Projector.DefaultConvention
	return []string{
		"Contributions are paid at the end of each month and compounded monthly",
		fmt.Sprintf("Depot, early-start and future-value projections use the %s monthly rate (annual rate / 12)", domain.RateConventionNominal),
		fmt.Sprintf("Yield projections use the %s monthly rate by default ((1 + annual rate)^(1/12) - 1)", conv),
		fmt.Sprintf("Subsidy is computed on at most %s per year: %s%% (tier %s) or %s%% (tier %s) up to %s, %s%% above",
			rules.EligibleCap.StringFixed(0),
			rules.Tier1Rate2027.Shift(2).StringFixed(0), domain.RateTier2027,
			rules.Tier1Rate2029.Shift(2).StringFixed(0), domain.RateTier2029,
			rules.Tier1Threshold.StringFixed(0), rules.Tier2Rate.Shift(2).StringFixed(0)),
		fmt.Sprintf("Child match is %s%% of at most %s per child, up to %d children",
			rules.ChildRate.Shift(2).StringFixed(0), rules.ChildBaseCap.StringFixed(0), rules.MaxChildren),
		fmt.Sprintf("Early-career bonus of %s is credited once as the starting balance", rules.OneOffBonus.StringFixed(0)),
		fmt.Sprintf("Early-start plan: state pays at most %.0f per month from age %d to %d", MaxMonthlyState, EarlyStartAge, EarlyStartEndAge),
		"Returns are deterministic; no taxes, fees or inflation are modelled",
	}
}
