package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTier selects the regulatory tier-1 matching rate.
type RateTier string

const (
	// RateTier2027 is the introductory tier (contract years 2027 and 2028).
	RateTier2027 RateTier = "2027_2028"
	// RateTier2029 applies from 2029 onwards with the raised tier-1 rate.
	RateTier2029 RateTier = "from_2029"
)

// ParseRateTier accepts the canonical names plus the short aliases used on the CLI.
func ParseRateTier(s string) (RateTier, error) {
	switch s {
	case "", string(RateTier2027), "2027", "a":
		return RateTier2027, nil
	case string(RateTier2029), "2029", "b":
		return RateTier2029, nil
	default:
		return "", fmt.Errorf("unknown rate tier %q (want %s or %s)", s, RateTier2027, RateTier2029)
	}
}

// InputMode states whether an entered own contribution is per month or per year.
type InputMode string

const (
	InputModeMonthly InputMode = "monthly"
	InputModeYearly  InputMode = "yearly"
)

// ContributionInput is the input of the subsidy (Zulage) calculation.
type ContributionInput struct {
	AnnualAmount     decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	ChildCount       int             `yaml:"child_count" json:"child_count"`
	RateTier         RateTier        `yaml:"rate_tier" json:"rate_tier"`
	EarlyCareerBonus bool            `yaml:"early_career_bonus" json:"early_career_bonus"`
}

// SubsidyResult is the full subsidy breakdown for one year of own contributions.
//
// Tier1Subsidy+Tier2Subsidy always equals BaseSubsidy and TotalSubsidy equals
// BaseSubsidy+ChildSubsidyTotal.
type SubsidyResult struct {
	OwnContribution      decimal.Decimal `json:"own_contribution"`
	EligibleAmount       decimal.Decimal `json:"eligible_amount"`
	BaseSubsidy          decimal.Decimal `json:"base_subsidy"`
	Tier1Subsidy         decimal.Decimal `json:"tier1_subsidy"`
	Tier2Subsidy         decimal.Decimal `json:"tier2_subsidy"`
	ChildCount           int             `json:"child_count"`
	ChildSubsidyPerChild decimal.Decimal `json:"child_subsidy_per_child"`
	ChildSubsidyTotal    decimal.Decimal `json:"child_subsidy_total"`
	TotalSubsidy         decimal.Decimal `json:"total_subsidy"`
	TotalIntoContract    decimal.Decimal `json:"total_into_contract"`
	FundingRate          decimal.Decimal `json:"funding_rate"` // fraction of own contribution, 0 when nothing is paid
	OneOffBonus          decimal.Decimal `json:"one_off_bonus"`
	WasCapped            bool            `json:"was_capped"`
}

// SubsidyRules holds the statutory parameters of the matching scheme.
// All amounts are per year.
type SubsidyRules struct {
	EligibleCap    decimal.Decimal `yaml:"eligible_cap" json:"eligible_cap"`       // own contribution eligible for any match
	Tier1Threshold decimal.Decimal `yaml:"tier1_threshold" json:"tier1_threshold"` // upper bound of the tier-1 band
	Tier1Rate2027  decimal.Decimal `yaml:"tier1_rate_2027" json:"tier1_rate_2027"` // tier-1 rate for RateTier2027
	Tier1Rate2029  decimal.Decimal `yaml:"tier1_rate_2029" json:"tier1_rate_2029"` // tier-1 rate for RateTier2029
	Tier2Rate      decimal.Decimal `yaml:"tier2_rate" json:"tier2_rate"`           // rate for the band above the threshold
	ChildRate      decimal.Decimal `yaml:"child_rate" json:"child_rate"`           // per child, per unit of own contribution
	ChildBaseCap   decimal.Decimal `yaml:"child_base_cap" json:"child_base_cap"`   // own contribution eligible for child match
	MaxChildren    int             `yaml:"max_children" json:"max_children"`       // children counted for the child match
	OneOffBonus    decimal.Decimal `yaml:"one_off_bonus" json:"one_off_bonus"`     // early-career bonus, paid once
	MaxOwnAmount   decimal.Decimal `yaml:"max_own_amount" json:"max_own_amount"`   // input ceiling for the depot calculator
}

// DefaultSubsidyRules returns the parameters of the draft Altersvorsorgedepot scheme.
func DefaultSubsidyRules() SubsidyRules {
	return SubsidyRules{
		EligibleCap:    decimal.NewFromInt(1800),
		Tier1Threshold: decimal.NewFromInt(1200),
		Tier1Rate2027:  decimal.RequireFromString("0.30"),
		Tier1Rate2029:  decimal.RequireFromString("0.35"),
		Tier2Rate:      decimal.RequireFromString("0.20"),
		ChildRate:      decimal.RequireFromString("0.25"),
		ChildBaseCap:   decimal.NewFromInt(1200),
		MaxChildren:    12,
		OneOffBonus:    decimal.NewFromInt(200),
		MaxOwnAmount:   decimal.NewFromInt(100000),
	}
}

// Tier1Rate returns the tier-1 rate for the given tier. Unknown tiers fall back
// to the introductory rate.
func (r SubsidyRules) Tier1Rate(tier RateTier) decimal.Decimal {
	if tier == RateTier2029 {
		return r.Tier1Rate2029
	}
	return r.Tier1Rate2027
}

// Tier2Width is the width of the band between the tier-1 threshold and the cap.
func (r SubsidyRules) Tier2Width() decimal.Decimal {
	w := r.EligibleCap.Sub(r.Tier1Threshold)
	if w.IsNegative() {
		return decimal.Zero
	}
	return w
}

// MaxChildSubsidy is the yearly child match ceiling per child.
func (r SubsidyRules) MaxChildSubsidy() decimal.Decimal {
	return decimal.Min(r.ChildBaseCap, r.EligibleCap).Mul(r.ChildRate)
}
