package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/internal/output"
)

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-34s %s\n", label+":", value)
}

func printSubsidy(w io.Writer, r domain.SubsidyResult) {
	fmt.Fprintln(w, "ZULAGE")
	line(w, "Own contribution (year)", output.FormatCurrency(r.OwnContribution))
	line(w, "Eligible amount", output.FormatCurrency(r.EligibleAmount))
	line(w, "Tier 1 subsidy", output.FormatCurrency(r.Tier1Subsidy))
	line(w, "Tier 2 subsidy", output.FormatCurrency(r.Tier2Subsidy))
	line(w, "Base subsidy", output.FormatCurrency(r.BaseSubsidy))
	line(w, fmt.Sprintf("Child subsidy (%d × %s)", r.ChildCount, output.FormatCurrency(r.ChildSubsidyPerChild)), output.FormatCurrency(r.ChildSubsidyTotal))
	line(w, "Total subsidy", output.FormatCurrency(r.TotalSubsidy))
	line(w, "Total into contract", output.FormatCurrency(r.TotalIntoContract))
	line(w, "Funding rate", output.FormatRate(r.FundingRate))
	if r.OneOffBonus.IsPositive() {
		line(w, "Early-career bonus (once)", output.FormatCurrency(r.OneOffBonus))
	}
	if r.WasCapped {
		fmt.Fprintf(w, "  Note: only %s per year are eligible for the subsidy\n", output.FormatCurrency(r.EligibleAmount))
	}
}

func printPensionPlan(w io.Writer, r domain.PensionPlanResult) {
	printSubsidy(w, r.Subsidy)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DEPOT")
	line(w, "Monthly own", output.FormatCurrency(r.MonthlyOwn))
	line(w, "Monthly subsidy", output.FormatCurrency(r.MonthlySubsidy))
	line(w, "Monthly into contract", output.FormatCurrency(r.MonthlyTotal))
	line(w, "Months", strconv.Itoa(r.Months))
	line(w, "Annual return", output.FormatPercentFloat(r.AnnualReturnPct))
	line(w, "Own paid in", output.FormatAmount(r.OwnPaidIn))
	line(w, "Subsidy paid in", output.FormatAmount(r.SubsidyPaidIn))
	line(w, "Total paid in", output.FormatAmount(r.TotalPaidIn))
	line(w, "Final capital", output.FormatAmount(r.FinalCapital))
	line(w, "Profit", output.FormatAmount(r.Profit))
}

func printEarlyStart(w io.Writer, r domain.EarlyStartResult) {
	fmt.Fprintln(w, "FRÜHSTART-RENTE")
	line(w, "Birth year", strconv.Itoa(r.BirthYear))
	line(w, "State phase", fmt.Sprintf("age %d-%d (%d-%d)", r.StartAge, r.EndAge, r.StartYear, r.EndYear))
	line(w, "Monthly state / private", output.FormatAmount(r.MonthlyState)+" / "+output.FormatAmount(r.MonthlyPrivate))
	line(w, "State paid in", output.FormatAmount(r.TotalStatePaid))
	line(w, "Private paid in until 18", output.FormatAmount(r.TotalPrivatePaid))
	line(w, "Capital at 18", output.FormatAmount(r.CapitalAt18))
	if r.ContinueAfter18 {
		line(w, "Monthly private after 18", output.FormatAmount(r.PrivateAfter18))
		line(w, "Private paid in after 18", output.FormatAmount(r.TotalPrivatePaidAfter18))
		line(w, fmt.Sprintf("Capital at %d", r.TargetAge), output.FormatAmount(r.CapitalAtTarget))
	}
	line(w, "Total paid in", output.FormatAmount(r.TotalPaidIn()))
}

func printYield(w io.Writer, r domain.YieldResult) {
	fmt.Fprintln(w, "RENDITE")
	line(w, "Months", strconv.Itoa(r.Months))
	line(w, "Annual return", fmt.Sprintf("%s (%s)", output.FormatPercentFloat(r.AnnualReturnPct), r.Convention))
	line(w, "Paid in", output.FormatAmount(r.TotalPaidIn))
	line(w, "Final balance", output.FormatAmount(r.FinalBalance))
	line(w, "Profit", output.FormatAmount(r.Profit))
	if len(r.Snapshots) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Year", "Paid in", "Balance", "Gain")
	for _, s := range r.Snapshots {
		t.Row(strconv.Itoa(s.Year), output.FormatAmount(s.CumulativePaidIn), output.FormatAmount(s.EndOfYearBalance), output.FormatAmount(s.Gain()))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.String())
}
