package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"gopkg.in/yaml.v3"
)

// Accepted ranges for scenario files. The calculators clamp anything outside
// them, but a file that asks for such values is almost certainly a typo.
const (
	minReturnPct = -50.0
	maxReturnPct = 50.0
	maxYears     = 80.0
	maxAmount    = 100000.0
	minBirthYear = 1900
	maxBirthYear = 2100
	minTargetAge = 18
	maxTargetAge = 100
	maxMonths    = 80 * 12
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalises and validates a YAML configuration
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.normalize(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// normalize rewrites tier aliases to their canonical names.
func (ip *InputParser) normalize(config *domain.Configuration) error {
	for i := range config.Scenarios {
		s := &config.Scenarios[i]
		if s.PensionPlan != nil {
			tier, err := domain.ParseRateTier(string(s.PensionPlan.RateTier))
			if err != nil {
				return fmt.Errorf("scenario %d (%s): %w", i, s.Name, err)
			}
			s.PensionPlan.RateTier = tier
			if s.PensionPlan.InputMode == "" {
				s.PensionPlan.InputMode = domain.InputModeMonthly
			}
		}
		if s.Subsidy != nil {
			tier, err := domain.ParseRateTier(string(s.Subsidy.RateTier))
			if err != nil {
				return fmt.Errorf("scenario %d (%s): %w", i, s.Name, err)
			}
			s.Subsidy.RateTier = tier
		}
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Rules != nil {
		if err := ip.validateRules(config.Rules); err != nil {
			return fmt.Errorf("subsidy rules validation failed: %w", err)
		}
	}

	// Validate scenarios
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	rules := config.EffectiveRules()
	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario, rules); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateRules validates user supplied subsidy parameters
func (ip *InputParser) validateRules(rules *domain.SubsidyRules) error {
	if !rules.EligibleCap.IsPositive() {
		return fmt.Errorf("eligible cap must be positive")
	}
	if !rules.Tier1Threshold.IsPositive() {
		return fmt.Errorf("tier 1 threshold must be positive")
	}
	if rules.Tier1Threshold.GreaterThan(rules.EligibleCap) {
		return fmt.Errorf("tier 1 threshold cannot exceed the eligible cap")
	}
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"tier 1 rate (2027)", rules.Tier1Rate2027},
		{"tier 1 rate (2029)", rules.Tier1Rate2029},
		{"tier 2 rate", rules.Tier2Rate},
		{"child rate", rules.ChildRate},
	}
	for _, r := range rates {
		if r.rate.IsNegative() || r.rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1", r.name)
		}
	}
	if rules.ChildBaseCap.IsNegative() {
		return fmt.Errorf("child base cap cannot be negative")
	}
	if rules.MaxChildren < 0 {
		return fmt.Errorf("max children cannot be negative")
	}
	if rules.OneOffBonus.IsNegative() {
		return fmt.Errorf("one-off bonus cannot be negative")
	}
	if !rules.MaxOwnAmount.IsPositive() {
		return fmt.Errorf("max own amount must be positive")
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario, rules domain.SubsidyRules) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if !scenario.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScenarioKind, scenario.Kind)
	}

	missing := func() error { return fmt.Errorf("%s block is required for kind %s", scenario.Kind, scenario.Kind) }

	switch scenario.Kind {
	case domain.ScenarioPensionPlan:
		if scenario.PensionPlan == nil {
			return missing()
		}
		return ip.validatePensionPlan(scenario.PensionPlan, rules)
	case domain.ScenarioEarlyStart:
		if scenario.EarlyStart == nil {
			return missing()
		}
		return ip.validateEarlyStart(scenario.EarlyStart)
	case domain.ScenarioYield:
		if scenario.Yield == nil {
			return missing()
		}
		return ip.validateYield(scenario.Yield)
	case domain.ScenarioFutureValue:
		if scenario.FutureValue == nil {
			return missing()
		}
		return ip.validateProjection("future value", scenario.FutureValue)
	case domain.ScenarioPhased:
		if scenario.Phased == nil {
			return missing()
		}
		if err := ip.validateProjection("phase 1", &scenario.Phased.Phase1); err != nil {
			return err
		}
		if scenario.Phased.Phase2Enabled {
			return ip.validateProjection("phase 2", &scenario.Phased.Phase2)
		}
		return nil
	case domain.ScenarioSubsidy:
		if scenario.Subsidy == nil {
			return missing()
		}
		return ip.validateContribution(scenario.Subsidy, rules)
	}
	return nil
}

func (ip *InputParser) validatePensionPlan(in *domain.PensionPlanInput, rules domain.SubsidyRules) error {
	if in.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if in.Amount.GreaterThan(rules.MaxOwnAmount) {
		return fmt.Errorf("amount cannot exceed %s", rules.MaxOwnAmount)
	}
	if in.InputMode != domain.InputModeMonthly && in.InputMode != domain.InputModeYearly {
		return fmt.Errorf("input mode must be %s or %s", domain.InputModeMonthly, domain.InputModeYearly)
	}
	if in.ChildCount < 0 || in.ChildCount > rules.MaxChildren {
		return fmt.Errorf("child count must be between 0 and %d", rules.MaxChildren)
	}
	if err := validateReturn(in.AnnualReturnPct); err != nil {
		return err
	}
	return validateYears(in.Years)
}

func (ip *InputParser) validateContribution(in *domain.ContributionInput, rules domain.SubsidyRules) error {
	if in.AnnualAmount.IsNegative() {
		return fmt.Errorf("annual amount cannot be negative")
	}
	if in.ChildCount < 0 || in.ChildCount > rules.MaxChildren {
		return fmt.Errorf("child count must be between 0 and %d", rules.MaxChildren)
	}
	return nil
}

func (ip *InputParser) validateEarlyStart(in *domain.EarlyStartInput) error {
	if in.BirthYear < minBirthYear || in.BirthYear > maxBirthYear {
		return fmt.Errorf("birth year must be between %d and %d", minBirthYear, maxBirthYear)
	}
	if in.MonthlyState < 0 || in.MonthlyState > 10 {
		return fmt.Errorf("monthly state contribution must be between 0 and 10")
	}
	if in.MonthlyPrivate < 0 || in.MonthlyPrivate > maxAmount {
		return fmt.Errorf("monthly private contribution must be between 0 and %.0f", maxAmount)
	}
	if in.PrivateAfter18 < 0 || in.PrivateAfter18 > maxAmount {
		return fmt.Errorf("private contribution after 18 must be between 0 and %.0f", maxAmount)
	}
	if in.ContinueAfter18 && (in.TargetAge < minTargetAge || in.TargetAge > maxTargetAge) {
		return fmt.Errorf("target age must be between %d and %d", minTargetAge, maxTargetAge)
	}
	return validateReturn(in.AnnualReturnPct)
}

func (ip *InputParser) validateYield(in *domain.YieldInput) error {
	if in.InitialBalance < 0 {
		return fmt.Errorf("initial balance cannot be negative")
	}
	if in.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if _, err := domain.ParseRateConvention(string(in.Convention), domain.RateConventionEffective); err != nil {
		return err
	}
	if err := validateReturn(in.AnnualReturnPct); err != nil {
		return err
	}
	return validateYears(in.Years)
}

func (ip *InputParser) validateProjection(label string, in *domain.ProjectionInput) error {
	if in.InitialBalance < 0 {
		return fmt.Errorf("%s: initial balance cannot be negative", label)
	}
	if in.MonthlyContribution < 0 {
		return fmt.Errorf("%s: monthly contribution cannot be negative", label)
	}
	if in.Months < 0 || in.Months > maxMonths {
		return fmt.Errorf("%s: months must be between 0 and %d", label, maxMonths)
	}
	if err := validateReturn(in.AnnualReturnPct); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

func validateReturn(pct float64) error {
	if pct < minReturnPct || pct > maxReturnPct {
		return fmt.Errorf("annual return must be between %.0f%% and %.0f%%", minReturnPct, maxReturnPct)
	}
	return nil
}

func validateYears(years float64) error {
	if years < 0 || years > maxYears {
		return fmt.Errorf("years must be between 0 and %.0f", maxYears)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	rules := domain.DefaultSubsidyRules()
	return &domain.Configuration{
		Rules: &rules,
		Scenarios: []domain.Scenario{
			{
				Name: "Depot 100 monthly",
				Kind: domain.ScenarioPensionPlan,
				PensionPlan: &domain.PensionPlanInput{
					Amount:          decimal.NewFromInt(100),
					InputMode:       domain.InputModeMonthly,
					RateTier:        domain.RateTier2027,
					AnnualReturnPct: 6,
					Years:           30,
				},
			},
			{
				Name: "Depot full cap with children",
				Kind: domain.ScenarioPensionPlan,
				PensionPlan: &domain.PensionPlanInput{
					Amount:           decimal.NewFromInt(1800),
					InputMode:        domain.InputModeYearly,
					ChildCount:       2,
					RateTier:         domain.RateTier2029,
					EarlyCareerBonus: true,
					AnnualReturnPct:  6,
					Years:            30,
				},
			},
			{
				Name: "Early start to 67",
				Kind: domain.ScenarioEarlyStart,
				EarlyStart: &domain.EarlyStartInput{
					BirthYear:       2020,
					MonthlyState:    10,
					ContinueAfter18: true,
					PrivateAfter18:  25,
					TargetAge:       67,
					AnnualReturnPct: 6,
				},
			},
			{
				Name: "ETF savings plan",
				Kind: domain.ScenarioYield,
				Yield: &domain.YieldInput{
					MonthlyContribution: 100,
					Years:               30,
					AnnualReturnPct:     6,
					Convention:          domain.RateConventionEffective,
				},
			},
		},
	}
}
