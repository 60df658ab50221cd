package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED RETIREMENT SAVINGS ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsOf(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s (%s)\n", i+1, scenario.Name, scenario.Kind)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		switch {
		case scenario.PensionPlan != nil:
			writePensionPlan(&buf, scenario.PensionPlan)
		case scenario.EarlyStart != nil:
			writeEarlyStart(&buf, scenario.EarlyStart)
		case scenario.Yield != nil:
			writeYield(&buf, scenario.Yield)
		case scenario.Phased != nil:
			writePhased(&buf, scenario.Phased)
		case scenario.Subsidy != nil:
			writeSubsidy(&buf, scenario.Subsidy)
		}
		writeTotals(&buf, scenario)
		writeTimeline(&buf, scenario.Timeline)
		fmt.Fprintln(&buf)
	}

	writeComparison(&buf, results)
	return buf.Bytes(), nil
}

func writeSubsidy(buf *bytes.Buffer, s *domain.SubsidyResult) {
	fmt.Fprintln(buf, "SUBSIDY BREAKDOWN (per year):")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  Own contribution:       %s\n", FormatCurrency(s.OwnContribution))
	fmt.Fprintf(buf, "  Eligible amount:        %s\n", FormatCurrency(s.EligibleAmount))
	fmt.Fprintf(buf, "  Base subsidy tier 1:    %s\n", FormatCurrency(s.Tier1Subsidy))
	fmt.Fprintf(buf, "  Base subsidy tier 2:    %s\n", FormatCurrency(s.Tier2Subsidy))
	fmt.Fprintf(buf, "  Child subsidy:          %s (%d x %s)\n",
		FormatCurrency(s.ChildSubsidyTotal), s.ChildCount, FormatCurrency(s.ChildSubsidyPerChild))
	fmt.Fprintf(buf, "  TOTAL SUBSIDY:          %s\n", FormatCurrency(s.TotalSubsidy))
	fmt.Fprintf(buf, "  Into the contract:      %s\n", FormatCurrency(s.TotalIntoContract))
	fmt.Fprintf(buf, "  Funding rate:           %s\n", FormatRate(s.FundingRate))
	if s.OneOffBonus.IsPositive() {
		fmt.Fprintf(buf, "  One-off bonus:          %s\n", FormatCurrency(s.OneOffBonus))
	}
	if s.WasCapped {
		fmt.Fprintf(buf, "  Note: only %s of the own contribution earns a subsidy\n", FormatCurrency(s.EligibleAmount))
	}
}

func writePensionPlan(buf *bytes.Buffer, p *domain.PensionPlanResult) {
	writeSubsidy(buf, &p.Subsidy)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "MONTHLY FLOW:")
	fmt.Fprintf(buf, "  Own:                    %s\n", FormatCurrency(p.MonthlyOwn))
	fmt.Fprintf(buf, "  Subsidy:                %s\n", FormatCurrency(p.MonthlySubsidy))
	fmt.Fprintf(buf, "  Total:                  %s\n", FormatCurrency(p.MonthlyTotal))
	fmt.Fprintf(buf, "  Return p.a.:            %s over %d months\n", FormatPercentFloat(p.AnnualReturnPct), p.Months)
	fmt.Fprintf(buf, "  Subsidies paid in:      %s\n", FormatAmount(p.SubsidyPaidIn))
}

func writeEarlyStart(buf *bytes.Buffer, e *domain.EarlyStartResult) {
	fmt.Fprintf(buf, "Born %d: state and private saving from %d (age %d) to %d (age %d)\n",
		e.BirthYear, e.StartYear, e.StartAge, e.EndYear, e.EndAge)
	fmt.Fprintf(buf, "  Monthly state:          %s\n", FormatAmount(e.MonthlyState))
	fmt.Fprintf(buf, "  Monthly private:        %s\n", FormatAmount(e.MonthlyPrivate))
	fmt.Fprintf(buf, "  State paid in:          %s\n", FormatAmount(e.TotalStatePaid))
	fmt.Fprintf(buf, "  Private paid in:        %s\n", FormatAmount(e.TotalPrivatePaid))
	fmt.Fprintf(buf, "  Capital at %d:          %s\n", e.EndAge, FormatAmount(e.CapitalAt18))
	if e.ContinueAfter18 {
		fmt.Fprintf(buf, "  Private after %d:       %s per month until %d\n", e.EndAge, FormatAmount(e.PrivateAfter18), e.TargetAge)
		fmt.Fprintf(buf, "  Paid in after %d:       %s\n", e.EndAge, FormatAmount(e.TotalPrivatePaidAfter18))
		fmt.Fprintf(buf, "  Capital at %d:          %s\n", e.TargetAge, FormatAmount(e.CapitalAtTarget))
	}
	fmt.Fprintf(buf, "  Return p.a.:            %s\n", FormatPercentFloat(e.AnnualReturnPct))
}

func writeYield(buf *bytes.Buffer, y *domain.YieldResult) {
	fmt.Fprintf(buf, "Return p.a.: %s (%s monthly rate) over %d months\n",
		FormatPercentFloat(y.AnnualReturnPct), y.Convention, y.Months)
}

func writePhased(buf *bytes.Buffer, p *domain.PhasedScheduleResult) {
	fmt.Fprintf(buf, "  Phase 1:                %d months, %s paid, balance %s\n",
		p.Phase1Months, FormatAmount(p.Phase1PaidIn), FormatAmount(p.Phase1Balance))
	if p.Phase2Months > 0 {
		fmt.Fprintf(buf, "  Phase 2:                %d months, %s paid\n", p.Phase2Months, FormatAmount(p.Phase2PaidIn))
	}
}

func writeTotals(buf *bytes.Buffer, sc domain.ScenarioSummary) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "RESULT:")
	fmt.Fprintf(buf, "  Total paid in:          %s\n", FormatAmount(sc.TotalPaidIn))
	fmt.Fprintf(buf, "  Own money:              %s\n", FormatAmount(sc.OwnPaidIn))
	fmt.Fprintf(buf, "  FINAL CAPITAL:          %s\n", FormatAmount(sc.FinalCapital))
	fmt.Fprintf(buf, "  Gain over paid in:      %s\n", FormatAmount(sc.Profit))
}

func writeTimeline(buf *bytes.Buffer, timeline []domain.YearlySnapshot) {
	if len(timeline) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-6s %20s %20s %20s\n", "Year", "Paid in", "Balance", "Gain")
	for _, s := range timeline {
		fmt.Fprintf(buf, "%-6d %20s %20s %20s\n", s.Year,
			FormatAmount(s.CumulativePaidIn), FormatAmount(s.EndOfYearBalance), FormatAmount(s.Gain()))
	}
}

func writeComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	if len(results.Scenarios) < 2 {
		return
	}
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	for _, sc := range results.Scenarios {
		fmt.Fprintf(buf, "  %-30s %20s  x%s\n", sc.Name, FormatAmount(sc.FinalCapital), fixed2(sc.Multiple()))
	}
	rec := AnalyzeScenarios(results)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Highest capital: %s (%s)\n", rec.ScenarioName, FormatAmount(rec.FinalCapital))
	if rec.MultipleName != "" {
		fmt.Fprintf(buf, "Best per own euro: %s (x%s)\n", rec.MultipleName, fixed2(rec.Multiple))
	}
}
