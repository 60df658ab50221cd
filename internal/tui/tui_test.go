package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

var (
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft     = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestNewModelComputesDefaults(t *testing.T) {
	m := NewModel(nil)

	assert.Equal(t, TabDepot, m.tab)
	assert.Equal(t, "1800.00", m.depot.Subsidy.OwnContribution.StringFixed(2))
	assert.Equal(t, "40.00", m.depot.MonthlySubsidy.StringFixed(2))
	assert.False(t, m.depot.Subsidy.WasCapped)
	assert.Equal(t, 360, m.depot.Months)

	assert.Equal(t, 144, m.early.Schedule.Phase1Months)
	assert.Equal(t, domain.RateConventionEffective, m.yield.Convention)
	assert.Len(t, m.yield.Snapshots, 20)
}

func TestSliderChangeRecalculates(t *testing.T) {
	m := NewModel(nil)

	m, _ = press(t, m, keyRight)
	assert.Equal(t, 160.0, m.sliders[TabDepot][depotAmount].Value)
	assert.True(t, m.depot.Subsidy.WasCapped)
	assert.Equal(t, "1800.00", m.depot.Subsidy.EligibleAmount.StringFixed(2))

	// move to the child slider and add one child
	m, _ = press(t, m, keyLeft, keyDown, keyDown, keyRight)
	assert.Equal(t, 1, m.depot.Subsidy.ChildCount)
	assert.Equal(t, "300.00", m.depot.Subsidy.ChildSubsidyTotal.StringFixed(2))

	m, _ = press(t, m, runeKey('r'))
	assert.Equal(t, 0, m.depot.Subsidy.ChildCount)
	assert.Equal(t, 150.0, m.sliders[TabDepot][depotAmount].Value)
}

func TestTabAndFocusNavigationWraps(t *testing.T) {
	m := NewModel(nil)

	m, _ = press(t, m, keyShiftTab)
	assert.Equal(t, TabYield, m.tab)
	m, _ = press(t, m, keyTab, keyTab)
	assert.Equal(t, TabEarlyStart, m.tab)

	m, _ = press(t, m, keyUp)
	assert.Equal(t, len(m.sliders[TabEarlyStart])-1, m.focus[TabEarlyStart])
	assert.Equal(t, 0, m.focus[TabDepot], "focus is tracked per tab")
}

func TestEarlyStartContinueToggle(t *testing.T) {
	m := NewModel(nil)
	m, _ = press(t, m, keyTab)
	assert.False(t, m.early.ContinueAfter18)

	m, _ = press(t, m, keyDown, keyDown, keyDown, keyRight)
	assert.True(t, m.early.ContinueAfter18)
	assert.Greater(t, m.early.CapitalAtTarget, m.early.CapitalAt18)
	assert.Contains(t, m.View(), "Privat ab 18")
}

func TestQuitAndHelp(t *testing.T) {
	m := NewModel(nil)

	m, cmd := press(t, m, runeKey('?'))
	assert.Nil(t, cmd)
	assert.True(t, m.showHelp)

	_, cmd = press(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	next, _ := NewModel(nil).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestViewShowsActiveCalculator(t *testing.T) {
	m := NewModel(nil)
	view := m.View()
	assert.Contains(t, view, "Altersvorsorgedepot")
	assert.Contains(t, view, "Förderquote")

	m, _ = press(t, m, keyTab, keyTab)
	view = m.View()
	assert.Contains(t, view, "Endkapital")
	assert.Contains(t, view, "Jahr")
}

func TestSlider(t *testing.T) {
	s := NewSlider("Rate", 6.3, 0, 12, 0.5)
	assert.Equal(t, 6.5, s.Value)

	s.SetValue(99)
	assert.Equal(t, 12.0, s.Value)
	s.Increment()
	assert.Equal(t, 12.0, s.Value)
	s.Reset()
	assert.Equal(t, 6.5, s.Value)
	assert.InDelta(t, 6.5/12, s.Percentage(), 1e-12)

	c := NewChoice("Mode", 0, "off", "on")
	assert.Equal(t, "off", c.DisplayValue())
	c.Increment()
	assert.True(t, c.On())
	assert.Equal(t, "on", c.DisplayValue())
	c.Increment()
	assert.Equal(t, "on", c.DisplayValue())

	flat := NewSlider("Flat", 3, 3, 3, 1)
	assert.Zero(t, flat.Percentage())
}

func TestRenderTimeline(t *testing.T) {
	assert.Contains(t, renderTimeline(nil, 10), "Keine vollständigen Jahre")

	snaps := make([]domain.YearlySnapshot, 15)
	for i := range snaps {
		snaps[i] = domain.YearlySnapshot{Year: i + 1, CumulativePaidIn: float64(i+1) * 100, EndOfYearBalance: float64(i+1) * 110}
	}
	out := renderTimeline(snaps, 10)
	assert.NotContains(t, out, "\n5 ")
	assert.Contains(t, out, "15")
}
