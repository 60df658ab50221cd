package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateConvention controls how an annual return is spread over twelve months.
type RateConvention string

const (
	// RateConventionNominal divides the annual rate by twelve.
	RateConventionNominal RateConvention = "nominal"
	// RateConventionEffective takes the twelfth root of (1 + annual rate).
	RateConventionEffective RateConvention = "effective"
)

// ParseRateConvention maps user input to a convention; empty selects def.
func ParseRateConvention(s string, def RateConvention) (RateConvention, error) {
	switch RateConvention(s) {
	case "":
		return def, nil
	case RateConventionNominal, RateConventionEffective:
		return RateConvention(s), nil
	default:
		return "", fmt.Errorf("unknown rate convention %q (want %s or %s)", s, RateConventionNominal, RateConventionEffective)
	}
}

// ProjectionInput describes one contribution regime compounded monthly.
// Contributions are paid at the end of each month.
type ProjectionInput struct {
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	Months              int     `yaml:"months" json:"months"`
	AnnualReturnPct     float64 `yaml:"annual_return_pct" json:"annual_return_pct"` // 6 means 6 %
	InitialBalance      float64 `yaml:"initial_balance" json:"initial_balance"`
}

// PaidIn is the un-compounded sum of the regime's monthly contributions.
func (p ProjectionInput) PaidIn() float64 {
	if p.Months <= 0 || p.MonthlyContribution <= 0 {
		return 0
	}
	return p.MonthlyContribution * float64(p.Months)
}

// PhasedScheduleInput chains two regimes. Phase2.InitialBalance is ignored and
// replaced by the balance reached at the end of phase 1.
type PhasedScheduleInput struct {
	Phase1        ProjectionInput `yaml:"phase1" json:"phase1"`
	Phase2        ProjectionInput `yaml:"phase2" json:"phase2"`
	Phase2Enabled bool            `yaml:"phase2_enabled" json:"phase2_enabled"`
}

// PhasedScheduleResult is the outcome of a two-phase schedule.
type PhasedScheduleResult struct {
	Phase1Balance float64 `json:"phase1_balance"`
	FinalBalance  float64 `json:"final_balance"`
	Phase1PaidIn  float64 `json:"phase1_paid_in"`
	Phase2PaidIn  float64 `json:"phase2_paid_in"`
	Phase1Months  int     `json:"phase1_months"`
	Phase2Months  int     `json:"phase2_months"`
}

// YearlySnapshot captures the state at the end of a completed year.
type YearlySnapshot struct {
	Year             int     `json:"year"` // 1-based
	CumulativePaidIn float64 `json:"cumulative_paid_in"`
	EndOfYearBalance float64 `json:"end_of_year_balance"`
}

// Gain is the balance above what was paid in.
func (s YearlySnapshot) Gain() float64 { return s.EndOfYearBalance - s.CumulativePaidIn }

// YieldInput drives the general compounding projector (Rendite-Rechner).
type YieldInput struct {
	InitialBalance      float64        `yaml:"initial_balance" json:"initial_balance"`
	MonthlyContribution float64        `yaml:"monthly_contribution" json:"monthly_contribution"`
	Years               float64        `yaml:"years" json:"years"`
	AnnualReturnPct     float64        `yaml:"annual_return_pct" json:"annual_return_pct"`
	Convention          RateConvention `yaml:"convention,omitempty" json:"convention,omitempty"`
}

// YieldResult is the projector output including one snapshot per completed year.
type YieldResult struct {
	FinalBalance    float64          `json:"final_balance"`
	TotalPaidIn     float64          `json:"total_paid_in"` // includes the initial balance
	Profit          float64          `json:"profit"`
	Months          int              `json:"months"`
	AnnualReturnPct float64          `json:"annual_return_pct"`
	Convention      RateConvention   `json:"convention"`
	Snapshots       []YearlySnapshot `json:"yearly_snapshots"`
}

// PensionPlanInput is the subsidised depot calculator (Altersvorsorgedepot).
type PensionPlanInput struct {
	Amount           decimal.Decimal `yaml:"amount" json:"amount"`
	InputMode        InputMode       `yaml:"input_mode" json:"input_mode"`
	ChildCount       int             `yaml:"child_count" json:"child_count"`
	RateTier         RateTier        `yaml:"rate_tier" json:"rate_tier"`
	EarlyCareerBonus bool            `yaml:"early_career_bonus" json:"early_career_bonus"`
	AnnualReturnPct  float64         `yaml:"annual_return_pct" json:"annual_return_pct"`
	Years            float64         `yaml:"years" json:"years"`
}

// PensionPlanResult combines the subsidy breakdown with the projected capital.
type PensionPlanResult struct {
	Subsidy         SubsidyResult   `json:"subsidy"`
	MonthlyOwn      decimal.Decimal `json:"monthly_own"`
	MonthlySubsidy  decimal.Decimal `json:"monthly_subsidy"`
	MonthlyTotal    decimal.Decimal `json:"monthly_total"`
	Months          int             `json:"months"`
	AnnualReturnPct float64         `json:"annual_return_pct"`
	OwnPaidIn       float64         `json:"own_paid_in"`
	SubsidyPaidIn   float64         `json:"subsidy_paid_in"` // annual subsidies plus the one-off bonus
	TotalPaidIn     float64         `json:"total_paid_in"`
	FinalCapital    float64         `json:"final_capital"`
	Profit          float64         `json:"profit"`
}

// EarlyStartInput is the children's savings plan (Frühstart-Rente). The state
// pays into the plan from age 6 to 18; afterwards only private money flows in.
type EarlyStartInput struct {
	BirthYear       int     `yaml:"birth_year" json:"birth_year"`
	MonthlyState    float64 `yaml:"monthly_state" json:"monthly_state"`
	MonthlyPrivate  float64 `yaml:"monthly_private" json:"monthly_private"`
	ContinueAfter18 bool    `yaml:"continue_after_18" json:"continue_after_18"`
	PrivateAfter18  float64 `yaml:"private_after_18" json:"private_after_18"`
	TargetAge       int     `yaml:"target_age" json:"target_age"`
	AnnualReturnPct float64 `yaml:"annual_return_pct" json:"annual_return_pct"`
}

// EarlyStartResult reports the clamped inputs, timeline and both balances.
type EarlyStartResult struct {
	BirthYear       int     `json:"birth_year"`
	StartAge        int     `json:"start_age"`
	EndAge          int     `json:"end_age"`
	StartYear       int     `json:"start_year"`
	EndYear         int     `json:"end_year"`
	AnnualReturnPct float64 `json:"annual_return_pct"`

	MonthlyState   float64 `json:"monthly_state"`
	MonthlyPrivate float64 `json:"monthly_private"`
	TotalMonthly   float64 `json:"total_monthly"`

	TotalStatePaid   float64 `json:"total_state_paid"`
	TotalPrivatePaid float64 `json:"total_private_paid"`

	ContinueAfter18         bool    `json:"continue_after_18"`
	TargetAge               int     `json:"target_age"`
	PrivateAfter18          float64 `json:"private_after_18"`
	TotalPrivatePaidAfter18 float64 `json:"total_private_paid_after_18"`

	CapitalAt18     float64              `json:"capital_at_18"`
	CapitalAtTarget float64              `json:"capital_at_target"`
	Schedule        PhasedScheduleResult `json:"schedule"`
}

// TotalPaidIn sums every contribution across both phases.
func (r EarlyStartResult) TotalPaidIn() float64 {
	return r.TotalStatePaid + r.TotalPrivatePaid + r.TotalPrivatePaidAfter18
}

// ScenarioSummary provides the headline figures of one configured scenario.
// Exactly one of the per-kind result pointers is set.
type ScenarioSummary struct {
	Name         string       `json:"name"`
	Kind         ScenarioKind `json:"kind"`
	FinalCapital float64      `json:"final_capital"`
	TotalPaidIn  float64      `json:"total_paid_in"`
	OwnPaidIn    float64      `json:"own_paid_in"` // money the saver funds personally
	Profit       float64      `json:"profit"`
	Months       int          `json:"months"`

	Timeline []YearlySnapshot `json:"timeline,omitempty"` // end-of-year balances, empty for subsidy-only scenarios

	PensionPlan *PensionPlanResult    `json:"pension_plan,omitempty"`
	EarlyStart  *EarlyStartResult     `json:"early_start,omitempty"`
	Yield       *YieldResult          `json:"yield,omitempty"`
	Phased      *PhasedScheduleResult `json:"phased,omitempty"`
	Subsidy     *SubsidyResult        `json:"subsidy,omitempty"`
}

// Multiple is final capital per unit of own money, 0 when nothing was paid.
func (s ScenarioSummary) Multiple() float64 {
	if s.OwnPaidIn <= 0 {
		return 0
	}
	return s.FinalCapital / s.OwnPaidIn
}

// ScenarioComparison holds the results of every scenario of a configuration.
type ScenarioComparison struct {
	Scenarios   []ScenarioSummary `json:"scenarios"`
	Rules       SubsidyRules      `json:"rules"`
	Assumptions []string          `json:"assumptions"`
}
