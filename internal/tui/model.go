package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// Tab identifies one of the interactive calculators.
type Tab int

const (
	TabDepot Tab = iota
	TabEarlyStart
	TabYield
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabDepot:
		return "Altersvorsorgedepot"
	case TabEarlyStart:
		return "Frühstart-Rente"
	case TabYield:
		return "Rendite-Rechner"
	default:
		return "Unknown"
	}
}

// Slider indices per tab.
const (
	depotAmount = iota
	depotMode
	depotChildren
	depotTier
	depotBonus
	depotReturn
	depotYears
)

const (
	earlyBirthYear = iota
	earlyState
	earlyPrivate
	earlyContinue
	earlyPrivateAfter
	earlyTargetAge
	earlyReturn
)

const (
	yieldInitial = iota
	yieldMonthly
	yieldYears
	yieldReturn
	yieldConvention
)

// Model is the Bubble Tea model. Every slider change recomputes the results of
// the active tab synchronously; the calculations are cheap and pure.
type Model struct {
	engine  *calculation.CalculationEngine
	tab     Tab
	sliders [tabCount][]*Slider
	focus   [tabCount]int

	depot domain.PensionPlanResult
	early domain.EarlyStartResult
	yield domain.YieldResult

	help     help.Model
	showHelp bool
	width    int
	height   int
}

// NewModel builds the model with default inputs for every calculator.
func NewModel(engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	thisYear := time.Now().Year()

	m := Model{
		engine: engine,
		help:   help.New(),
		width:  100,
		height: 30,
	}
	m.sliders[TabDepot] = []*Slider{
		depotAmount:   NewSlider("Eigenbeitrag", 150, 0, 2000, 10).WithUnit(" €"),
		depotMode:     NewChoice("Eingabe", 0, "monatlich", "jährlich"),
		depotChildren: NewSlider("Kinder", 0, 0, float64(engine.Rules().MaxChildren), 1),
		depotTier:     NewChoice("Fördersatz", 0, "2027/2028", "ab 2029"),
		depotBonus:    NewChoice("Berufseinsteigerbonus", 0, "nein", "ja"),
		depotReturn:   NewSlider("Rendite p.a.", 6, 0, 12, 0.5).WithFormat("%.1f").WithUnit(" %"),
		depotYears:    NewSlider("Laufzeit", 30, 1, calculation.MaxYears, 1).WithUnit(" Jahre"),
	}
	m.sliders[TabEarlyStart] = []*Slider{
		earlyBirthYear:    NewSlider("Geburtsjahr", float64(thisYear-calculation.EarlyStartAge), float64(thisYear-30), float64(thisYear+5), 1),
		earlyState:        NewSlider("Staatlich / Monat", calculation.DefaultStateAmount, 0, calculation.MaxMonthlyState, 1).WithUnit(" €"),
		earlyPrivate:      NewSlider("Privat / Monat", 0, 0, 200, 5).WithUnit(" €"),
		earlyContinue:     NewChoice("Nach 18 weiter sparen", 0, "nein", "ja"),
		earlyPrivateAfter: NewSlider("Privat ab 18 / Monat", 50, 0, 1000, 10).WithUnit(" €"),
		earlyTargetAge:    NewSlider("Zielalter", calculation.DefaultTargetAge, calculation.EarlyStartEndAge, calculation.MaxTargetAge, 1).WithUnit(" Jahre"),
		earlyReturn:       NewSlider("Rendite p.a.", 6, 0, 12, 0.5).WithFormat("%.1f").WithUnit(" %"),
	}
	m.sliders[TabYield] = []*Slider{
		yieldInitial:    NewSlider("Startkapital", 10000, 0, 100000, 1000).WithUnit(" €"),
		yieldMonthly:    NewSlider("Sparrate / Monat", 200, 0, 3000, 25).WithUnit(" €"),
		yieldYears:      NewSlider("Laufzeit", 20, 1, 50, 1).WithUnit(" Jahre"),
		yieldReturn:     NewSlider("Rendite p.a.", 7, -10, 15, 0.5).WithFormat("%.1f").WithUnit(" %"),
		yieldConvention: NewChoice("Monatszins", 0, "effektiv", "nominal"),
	}
	for t := range tabCount {
		m.recalculate(t)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sliders := m.sliders[m.tab]
	focused := sliders[m.focus[m.tab]]

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
	case key.Matches(msg, keys.Up):
		m.focus[m.tab] = (m.focus[m.tab] + len(sliders) - 1) % len(sliders)
	case key.Matches(msg, keys.Down):
		m.focus[m.tab] = (m.focus[m.tab] + 1) % len(sliders)
	case key.Matches(msg, keys.Left):
		focused.Decrement()
		m.recalculate(m.tab)
	case key.Matches(msg, keys.Right):
		focused.Increment()
		m.recalculate(m.tab)
	case key.Matches(msg, keys.Reset):
		for _, s := range sliders {
			s.Reset()
		}
		m.recalculate(m.tab)
	}
	return m, nil
}

// recalculate refreshes the result of one tab from its sliders.
func (m *Model) recalculate(t Tab) {
	s := m.sliders[t]
	switch t {
	case TabDepot:
		mode := domain.InputModeMonthly
		if s[depotMode].On() {
			mode = domain.InputModeYearly
		}
		tier := domain.RateTier2027
		if s[depotTier].On() {
			tier = domain.RateTier2029
		}
		m.depot = m.engine.CalculatePensionPlan(domain.PensionPlanInput{
			Amount:           decimal.NewFromFloat(s[depotAmount].Value),
			InputMode:        mode,
			ChildCount:       s[depotChildren].Index(),
			RateTier:         tier,
			EarlyCareerBonus: s[depotBonus].On(),
			AnnualReturnPct:  s[depotReturn].Value,
			Years:            s[depotYears].Value,
		})
	case TabEarlyStart:
		m.early = m.engine.CalculateEarlyStart(domain.EarlyStartInput{
			BirthYear:       s[earlyBirthYear].Index(),
			MonthlyState:    s[earlyState].Value,
			MonthlyPrivate:  s[earlyPrivate].Value,
			ContinueAfter18: s[earlyContinue].On(),
			PrivateAfter18:  s[earlyPrivateAfter].Value,
			TargetAge:       s[earlyTargetAge].Index(),
			AnnualReturnPct: s[earlyReturn].Value,
		})
	case TabYield:
		conv := domain.RateConventionEffective
		if s[yieldConvention].On() {
			conv = domain.RateConventionNominal
		}
		m.yield = m.engine.CalculateYield(domain.YieldInput{
			InitialBalance:      s[yieldInitial].Value,
			MonthlyContribution: s[yieldMonthly].Value,
			Years:               s[yieldYears].Value,
			AnnualReturnPct:     s[yieldReturn].Value,
			Convention:          conv,
		})
	}
}

// Run starts the interactive calculator on the alternate screen.
func Run(engine *calculation.CalculationEngine) error {
	_, err := tea.NewProgram(NewModel(engine), tea.WithAltScreen()).Run()
	return err
}
