package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// SubsidyCalculator computes the tiered state match (Zulage) on an annual own
// contribution.
type SubsidyCalculator struct {
	Rules domain.SubsidyRules
}

// NewSubsidyCalculator creates a calculator with the default statutory rules
func NewSubsidyCalculator() *SubsidyCalculator {
	return &SubsidyCalculator{Rules: domain.DefaultSubsidyRules()}
}

// NewSubsidyCalculatorWithRules creates a calculator with configurable rules
func NewSubsidyCalculatorWithRules(rules domain.SubsidyRules) *SubsidyCalculator {
	return &SubsidyCalculator{Rules: rules}
}

// Calculate returns the subsidy breakdown. Inputs out of range are clamped,
// never rejected.
func (sc *SubsidyCalculator) Calculate(in domain.ContributionInput) domain.SubsidyResult {
	rules := sc.Rules

	children := ClampInt(in.ChildCount, 0, rules.MaxChildren)
	own := in.AnnualAmount
	if own.IsNegative() {
		own = decimal.Zero
	}

	eligible := decimal.Min(own, rules.EligibleCap)

	// Tier 1 covers 0..threshold, tier 2 the band above it up to the cap.
	e1 := decimal.Min(eligible, rules.Tier1Threshold)
	e2 := clampDecimal(eligible.Sub(rules.Tier1Threshold), decimal.Zero, rules.Tier2Width())
	tier1 := e1.Mul(rules.Tier1Rate(in.RateTier))
	tier2 := e2.Mul(rules.Tier2Rate)
	base := tier1.Add(tier2)

	// The child match is capped at its own base, not at the full cap.
	perChild := decimal.Min(eligible, rules.ChildBaseCap).Mul(rules.ChildRate)
	childTotal := perChild.Mul(decimal.NewFromInt(int64(children)))

	total := base.Add(childTotal)

	fundingRate := decimal.Zero
	if own.IsPositive() {
		fundingRate = total.Div(own)
	}

	bonus := decimal.Zero
	if in.EarlyCareerBonus {
		bonus = rules.OneOffBonus
	}

	return domain.SubsidyResult{
		OwnContribution:      own,
		EligibleAmount:       eligible,
		BaseSubsidy:          base,
		Tier1Subsidy:         tier1,
		Tier2Subsidy:         tier2,
		ChildCount:           children,
		ChildSubsidyPerChild: perChild,
		ChildSubsidyTotal:    childTotal,
		TotalSubsidy:         total,
		TotalIntoContract:    own.Add(total),
		FundingRate:          fundingRate,
		OneOffBonus:          bonus,
		WasCapped:            own.GreaterThan(rules.EligibleCap),
	}
}

// MaxAnnualSubsidy is the largest base plus child match reachable for the
// given tier and number of children.
func (sc *SubsidyCalculator) MaxAnnualSubsidy(tier domain.RateTier, children int) decimal.Decimal {
	res := sc.Calculate(domain.ContributionInput{
		AnnualAmount: sc.Rules.EligibleCap,
		ChildCount:   children,
		RateTier:     tier,
	})
	return res.TotalSubsidy
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(hi, decimal.Max(lo, v))
}
