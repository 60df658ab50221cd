package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

func main() {
	ce := calculation.NewCalculationEngine()
	rules := ce.Rules()

	for _, tier := range []domain.RateTier{domain.RateTier2027, domain.RateTier2029} {
		fmt.Printf("Tier %s (tier-1 rate %s)\n", tier, rules.Tier1Rate(tier).StringFixed(2))
		fmt.Printf("%10s %10s %10s %10s %10s %8s\n", "own", "tier1", "tier2", "children", "total", "rate")
		for own := int64(0); own <= 2400; own += 300 {
			res := ce.CalculateSubsidy(domain.ContributionInput{
				AnnualAmount: decimal.NewFromInt(own),
				ChildCount:   1,
				RateTier:     tier,
			})
			fmt.Printf("%10s %10s %10s %10s %10s %7s%%\n",
				res.OwnContribution.StringFixed(2),
				res.Tier1Subsidy.StringFixed(2),
				res.Tier2Subsidy.StringFixed(2),
				res.ChildSubsidyTotal.StringFixed(2),
				res.TotalSubsidy.StringFixed(2),
				res.FundingRate.Shift(2).StringFixed(1))
		}
		fmt.Printf("max with one child: %s\n\n", ce.SubsidyCalc.MaxAnnualSubsidy(tier, 1).StringFixed(2))
	}
}
