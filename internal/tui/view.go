package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/internal/output"
)

const maxTimelineRows = 10

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Vorsorge-Rechner"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	for i, s := range m.sliders[m.tab] {
		b.WriteString(s.Render(i == m.focus[m.tab]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.tab {
	case TabDepot:
		b.WriteString(m.renderDepot())
	case TabEarlyStart:
		b.WriteString(m.renderEarlyStart())
	case TabYield:
		b.WriteString(m.renderYield())
	}

	b.WriteString("\n\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	}
	return AppStyle.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		style := InactiveTabStyle
		if t == m.tab {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func metricCard(label, value string, style lipgloss.Style) string {
	return CardStyle.Width(24).Render(MetricLabelStyle.Render(label) + "\n" + style.Render(value))
}

func cards(items ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m Model) renderDepot() string {
	r := m.depot
	top := cards(
		metricCard("Eigenbeitrag / Monat", output.FormatCurrency(r.MonthlyOwn), MetricValueStyle),
		metricCard("Zulage / Monat", output.FormatCurrency(r.MonthlySubsidy), MetricPositiveStyle),
		metricCard("Förderquote", output.FormatRate(r.Subsidy.FundingRate), MetricValueStyle),
	)
	bottom := cards(
		metricCard("Eingezahlt", output.FormatWholeAmount(r.TotalPaidIn), MetricValueStyle),
		metricCard(fmt.Sprintf("Kapital nach %d Monaten", r.Months), output.FormatWholeAmount(r.FinalCapital), MetricValueStyle),
		metricCard("Ertrag", output.FormatWholeAmount(r.Profit), metricStyle(r.Profit)),
	)
	var note string
	if r.Subsidy.WasCapped {
		note = "\n" + SubtitleStyle.Render(fmt.Sprintf("Zulage nur auf %s pro Jahr", output.FormatCurrency(r.Subsidy.EligibleAmount)))
	}
	return top + "\n" + bottom + note
}

func (m Model) renderEarlyStart() string {
	r := m.early
	top := cards(
		metricCard(fmt.Sprintf("Kapital mit 18 (%d)", r.EndYear), output.FormatWholeAmount(r.CapitalAt18), MetricValueStyle),
		metricCard("Staatlich eingezahlt", output.FormatWholeAmount(r.TotalStatePaid), MetricPositiveStyle),
		metricCard("Privat eingezahlt", output.FormatWholeAmount(r.TotalPrivatePaid), MetricValueStyle),
	)
	if !r.ContinueAfter18 {
		return top
	}
	bottom := cards(
		metricCard(fmt.Sprintf("Kapital mit %d", r.TargetAge), output.FormatWholeAmount(r.CapitalAtTarget), MetricValueStyle),
		metricCard("Privat ab 18", output.FormatWholeAmount(r.TotalPrivatePaidAfter18), MetricValueStyle),
		metricCard("Ertrag", output.FormatWholeAmount(r.CapitalAtTarget-r.TotalPaidIn()), metricStyle(r.CapitalAtTarget-r.TotalPaidIn())),
	)
	return top + "\n" + bottom
}

func (m Model) renderYield() string {
	r := m.yield
	top := cards(
		metricCard("Endkapital", output.FormatWholeAmount(r.FinalBalance), MetricValueStyle),
		metricCard("Eingezahlt", output.FormatWholeAmount(r.TotalPaidIn), MetricValueStyle),
		metricCard("Ertrag", output.FormatWholeAmount(r.Profit), metricStyle(r.Profit)),
	)
	return top + "\n\n" + renderTimeline(r.Snapshots, 30)
}

// renderTimeline draws the last snapshots as a bar table scaled to the
// largest balance shown.
func renderTimeline(snaps []domain.YearlySnapshot, barWidth int) string {
	if len(snaps) == 0 {
		return SubtitleStyle.Render("Keine vollständigen Jahre")
	}
	if len(snaps) > maxTimelineRows {
		snaps = snaps[len(snaps)-maxTimelineRows:]
	}
	peak := 0.0
	for _, s := range snaps {
		peak = max(peak, s.EndOfYearBalance)
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-6s %16s %16s", "Jahr", "Eingezahlt", "Kapital")))
	for _, s := range snaps {
		width := 0
		if peak > 0 {
			width = int(s.EndOfYearBalance / peak * float64(barWidth))
		}
		b.WriteString("\n")
		b.WriteString(TableCellStyle.Render(fmt.Sprintf("%-6d %16s %16s ", s.Year, output.FormatAmount(s.CumulativePaidIn), output.FormatAmount(s.EndOfYearBalance))))
		b.WriteString(BarStyle.Render(strings.Repeat("█", max(0, width))))
	}
	return b.String()
}
