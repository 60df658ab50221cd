package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#2563EB")
	ColorAccent  = lipgloss.Color("#F59E0B")
	ColorSuccess = lipgloss.Color("#16A34A")
	ColorDanger  = lipgloss.Color("#DC2626")
	ColorInfo    = lipgloss.Color("#0891B2")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#374151")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	ParameterLabelStyle = lipgloss.NewStyle().Bold(true)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle   = lipgloss.NewStyle()
	BarStyle         = lipgloss.NewStyle().Foreground(ColorAccent)
)

// metricStyle colours a value by its sign.
func metricStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return MetricPositiveStyle
	case v < 0:
		return MetricNegativeStyle
	default:
		return MetricValueStyle
	}
}
