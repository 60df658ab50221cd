package output

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/xuri/excelize/v2"
)

func buildTestComparison() *domain.ScenarioComparison {
	sub := domain.SubsidyResult{
		OwnContribution:      decimal.NewFromInt(1200),
		EligibleAmount:       decimal.NewFromInt(1200),
		BaseSubsidy:          decimal.NewFromInt(360),
		Tier1Subsidy:         decimal.NewFromInt(360),
		Tier2Subsidy:         decimal.Zero,
		ChildSubsidyPerChild: decimal.NewFromInt(300),
		ChildSubsidyTotal:    decimal.Zero,
		TotalSubsidy:         decimal.NewFromInt(360),
		TotalIntoContract:    decimal.NewFromInt(1560),
		FundingRate:          decimal.RequireFromString("0.3"),
		OneOffBonus:          decimal.Zero,
	}
	return &domain.ScenarioComparison{
		Rules:       domain.DefaultSubsidyRules(),
		Assumptions: []string{"Contributions are paid at the end of each month"},
		Scenarios: []domain.ScenarioSummary{
			{
				Name: "B Depot", Kind: domain.ScenarioPensionPlan,
				FinalCapital: 3120, TotalPaidIn: 3120, OwnPaidIn: 2400, Months: 24,
				PensionPlan: &domain.PensionPlanResult{
					Subsidy: sub, MonthlyOwn: decimal.NewFromInt(100), MonthlySubsidy: decimal.NewFromInt(30),
					MonthlyTotal: decimal.NewFromInt(130), Months: 24, OwnPaidIn: 2400, SubsidyPaidIn: 720,
					TotalPaidIn: 3120, FinalCapital: 3120,
				},
				Timeline: []domain.YearlySnapshot{
					{Year: 1, CumulativePaidIn: 1560, EndOfYearBalance: 1560},
					{Year: 2, CumulativePaidIn: 3120, EndOfYearBalance: 3120},
				},
			},
			{
				Name: "A ETF", Kind: domain.ScenarioYield,
				FinalCapital: 1300, TotalPaidIn: 1200, OwnPaidIn: 1200, Profit: 100, Months: 12,
				Yield: &domain.YieldResult{
					FinalBalance: 1300, TotalPaidIn: 1200, Profit: 100, Months: 12, AnnualReturnPct: 6,
					Convention: domain.RateConventionEffective,
				},
				Timeline: []domain.YearlySnapshot{{Year: 1, CumulativePaidIn: 1200, EndOfYearBalance: 1300}},
			},
		},
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "VORSORGE SCENARIO SUMMARY")
	assert.Contains(t, content, "Highest capital: B Depot (3.120,00 €)")
	assert.Contains(t, content, "Best per own euro: B Depot (x1.30)")
	assert.Less(t, strings.Index(content, "A ETF"), strings.Index(content, "B Depot"), "sorted by name")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "DETAILED RETIREMENT SAVINGS ANALYSIS")
	assert.Contains(t, content, "• Contributions are paid at the end of each month")
	assert.Contains(t, content, "SCENARIO 1: B Depot (pension_plan)")
	assert.Contains(t, content, "TOTAL SUBSIDY:          360,00 €")
	assert.Contains(t, content, "Funding rate:           30,00 %")
	assert.Contains(t, content, "(effective monthly rate)")
	assert.Contains(t, content, "SCENARIO COMPARISON")
}

func TestConsoleVerboseFormatter_DefaultAssumptions(t *testing.T) {
	results := buildTestComparison()
	results.Assumptions = nil
	out, err := ConsoleVerboseFormatter{}.Format(results)
	require.NoError(t, err)
	assert.Contains(t, string(out), DefaultAssumptions[0])
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header + 2 rows")
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"A ETF", "yield", "12", "1200.00", "1200.00", "1300.00", "100.00", "1.08"}, records[1])
	assert.Equal(t, "B Depot", records[2][0])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + 3 timeline rows")
	assert.Equal(t, []string{"A ETF", "yield", "1", "1200.00", "1300.00", "100.00", "true"}, records[1])
	assert.Equal(t, "false", records[2][6])
	assert.Equal(t, "true", records[3][6])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	var decoded domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Scenarios, 2)
	assert.Equal(t, "B Depot", decoded.Scenarios[0].Name)
	assert.True(t, decoded.Scenarios[0].PensionPlan.Subsidy.TotalSubsidy.Equal(decimal.NewFromInt(360)))
	assert.Contains(t, string(out), `"yearly_snapshots"`)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "Szenariovergleich")
	assert.Contains(t, content, "Förderquote 30,00 %")
	assert.Contains(t, content, `id="chart-1"`)
	assert.Contains(t, content, "end_of_year_balance")
	assert.Contains(t, content, `class="highlight"`)
}

func TestFormatterRegistry(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	for _, alias := range AvailableFormatAliases() {
		assert.NotNil(t, GetFormatterByName(alias), alias)
	}
	assert.Equal(t, "console", GetFormatterByName(" Verbose ").Name())
	assert.Nil(t, GetFormatterByName("pdf"))

	assert.Equal(t, "csv", FileExtension(CSVDetailedExporter{}))
	assert.Equal(t, "txt", FileExtension(ConsoleFormatter{}))
	assert.Equal(t, "html", FileExtension(HTMLFormatter{}))

	ff := FormatterFunc{ID: "names", F: func(r *domain.ScenarioComparison) ([]byte, error) {
		return []byte(r.Scenarios[0].Name), nil
	}}
	out, err := ff.Format(buildTestComparison())
	require.NoError(t, err)
	assert.Equal(t, "B Depot", string(out))
	assert.Equal(t, "names", ff.Name())
}

func TestAnalyzeScenarios(t *testing.T) {
	rec := AnalyzeScenarios(buildTestComparison())
	assert.Equal(t, "B Depot", rec.ScenarioName)
	assert.Equal(t, 3120.0, rec.FinalCapital)
	assert.Equal(t, "B Depot", rec.MultipleName)
	assert.InDelta(t, 1.3, rec.Multiple, 1e-12)
	assert.InDelta(t, 720.0/3120, rec.SubsidyShare, 1e-12)

	assert.Equal(t, Recommendation{}, AnalyzeScenarios(&domain.ScenarioComparison{}))
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(nil))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.234,57 €", FormatCurrency(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "12,35 %", FormatPercentage(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "30,00 %", FormatRate(decimal.RequireFromString("0.3")))
	assert.Equal(t, "6,00 %", FormatPercentFloat(6))
	assert.Equal(t, "0,00 €", FormatAmount(0))
	assert.Equal(t, "12.345 €", FormatWholeAmount(12345.4))
	assert.Equal(t, "0 €", FormatWholeAmount(math.NaN()))
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "true", boolToString(true))
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(buildTestComparison())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Szenarien", "Zeitverlauf", "Annahmen"}, wb.GetSheetList())

	rows, err := wb.GetRows("Szenarien", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3, "header + 2 scenarios")
	assert.Equal(t, "Endkapital", rows[0][2])
	assert.Equal(t, "A ETF", rows[1][0])
	assert.Equal(t, "3120", rows[2][2])
	assert.Equal(t, "1.3", rows[2][7])

	timeline, err := wb.GetRows("Zeitverlauf", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Len(t, timeline, 4)

	assumptions, err := wb.GetRows("Annahmen")
	require.NoError(t, err)
	assert.Equal(t, "Contributions are paid at the end of each month", assumptions[1][0])
	assert.Equal(t, "xlsx", FileExtension(XLSXFormatter{}))
	assert.Equal(t, "xlsx", GetFormatterByName("Excel").Name())
}
