package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/config"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

const exampleConfig = "../testdata/example_config.yaml"

func loadAndRun(t *testing.T) (*domain.Configuration, *domain.ScenarioComparison) {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)

	results, err := calculation.NewCalculationEngine().RunScenarios(t.Context(), cfg)
	require.NoError(t, err)
	return cfg, results
}

func TestEndToEndCalculation(t *testing.T) {
	cfg, results := loadAndRun(t)
	require.Len(t, results.Scenarios, len(cfg.Scenarios))
	assert.Len(t, results.Assumptions, 8)
	assert.True(t, results.Rules.EligibleCap.Equal(domain.DefaultSubsidyRules().EligibleCap))

	byName := map[string]domain.ScenarioSummary{}
	for _, s := range results.Scenarios {
		byName[s.Name] = s
	}

	small := byName["Depot 100 monthly"]
	require.NotNil(t, small.PensionPlan)
	assert.Equal(t, "1200.00", small.PensionPlan.Subsidy.OwnContribution.StringFixed(2))
	assert.Equal(t, "360.00", small.PensionPlan.Subsidy.TotalSubsidy.StringFixed(2))
	assert.Len(t, small.Timeline, 30)

	full := byName["Depot full cap with children"]
	require.NotNil(t, full.PensionPlan)
	assert.Equal(t, "1140.00", full.PensionPlan.Subsidy.TotalSubsidy.StringFixed(2))
	assert.Equal(t, "200.00", full.PensionPlan.Subsidy.OneOffBonus.StringFixed(2))
	assert.Greater(t, full.FinalCapital, small.FinalCapital)
	assert.Greater(t, full.Multiple(), small.Multiple(), "more subsidy per own euro")

	early := byName["Early start to 67"]
	require.NotNil(t, early.EarlyStart)
	assert.Equal(t, domain.ScenarioEarlyStart, early.Kind)
	assert.Equal(t, 144, early.EarlyStart.Schedule.Phase1Months)
	assert.Equal(t, (67-18)*12, early.EarlyStart.Schedule.Phase2Months)
	assert.Greater(t, early.EarlyStart.CapitalAtTarget, early.EarlyStart.CapitalAt18)

	etf := byName["ETF savings plan"]
	require.NotNil(t, etf.Yield)
	assert.Equal(t, domain.RateConventionEffective, etf.Yield.Convention)
	assert.Equal(t, etf.Yield.Snapshots, etf.Timeline)

	state := byName["State money only, no return"]
	require.NotNil(t, state.Phased)
	assert.InDelta(t, 1440.0, state.FinalCapital, 1e-9)
	assert.InDelta(t, 0.0, state.Profit, 1e-9)
}

// The depot and the ETF plan pay the same own money; the depot's lead comes
// from the subsidy and the rate convention only.
func TestDepotBeatsUnsubsidisedPlan(t *testing.T) {
	_, results := loadAndRun(t)

	var depot, etf domain.ScenarioSummary
	for _, s := range results.Scenarios {
		switch s.Name {
		case "Depot 100 monthly":
			depot = s
		case "ETF savings plan":
			etf = s
		}
	}
	assert.InDelta(t, depot.OwnPaidIn, etf.OwnPaidIn, 1e-6)
	assert.Greater(t, depot.FinalCapital, etf.FinalCapital)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	example := parser.CreateExampleConfiguration()
	assert.NoError(t, parser.ValidateConfiguration(example))
}
