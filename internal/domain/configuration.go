package domain

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenarioKind names the calculator a scenario runs through.
type ScenarioKind string

const (
	ScenarioPensionPlan ScenarioKind = "pension_plan"
	ScenarioEarlyStart  ScenarioKind = "early_start"
	ScenarioYield       ScenarioKind = "yield"
	ScenarioFutureValue ScenarioKind = "future_value"
	ScenarioPhased      ScenarioKind = "phased"
	ScenarioSubsidy     ScenarioKind = "subsidy"
)

// ErrUnknownScenarioKind is returned for a scenario whose kind no calculator handles.
var ErrUnknownScenarioKind = errors.New("unknown scenario kind")

// Valid reports whether k names a supported calculator.
func (k ScenarioKind) Valid() bool {
	for _, known := range ScenarioKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ScenarioKinds lists every supported kind in display order.
var ScenarioKinds = []ScenarioKind{
	ScenarioPensionPlan,
	ScenarioEarlyStart,
	ScenarioYield,
	ScenarioFutureValue,
	ScenarioPhased,
	ScenarioSubsidy,
}

// Configuration is the root of a scenario file.
type Configuration struct {
	Rules     *SubsidyRules `yaml:"rules,omitempty" json:"rules,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios" json:"scenarios"`
}

// EffectiveRules returns the configured rules or the defaults.
func (c *Configuration) EffectiveRules() SubsidyRules {
	if c == nil || c.Rules == nil {
		return DefaultSubsidyRules()
	}
	return *c.Rules
}

// Scenario is one named calculation. The block matching Kind must be present.
type Scenario struct {
	Name        string               `yaml:"name" json:"name"`
	Kind        ScenarioKind         `yaml:"kind" json:"kind"`
	PensionPlan *PensionPlanInput    `yaml:"pension_plan,omitempty" json:"pension_plan,omitempty"`
	EarlyStart  *EarlyStartInput     `yaml:"early_start,omitempty" json:"early_start,omitempty"`
	Yield       *YieldInput          `yaml:"yield,omitempty" json:"yield,omitempty"`
	FutureValue *ProjectionInput     `yaml:"future_value,omitempty" json:"future_value,omitempty"`
	Phased      *PhasedScheduleInput `yaml:"phased,omitempty" json:"phased,omitempty"`
	Subsidy     *ContributionInput   `yaml:"subsidy,omitempty" json:"subsidy,omitempty"`
}

// UnmarshalYAML normalises the kind and infers it from the single populated
// block when it is omitted.
func (s *Scenario) UnmarshalYAML(value *yaml.Node) error {
	type alias Scenario
	var raw alias
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Scenario(raw)
	s.Kind = ScenarioKind(strings.ToLower(strings.TrimSpace(string(s.Kind))))
	if s.Kind != "" {
		return nil
	}

	var found []ScenarioKind
	if s.PensionPlan != nil {
		found = append(found, ScenarioPensionPlan)
	}
	if s.EarlyStart != nil {
		found = append(found, ScenarioEarlyStart)
	}
	if s.Yield != nil {
		found = append(found, ScenarioYield)
	}
	if s.FutureValue != nil {
		found = append(found, ScenarioFutureValue)
	}
	if s.Phased != nil {
		found = append(found, ScenarioPhased)
	}
	if s.Subsidy != nil {
		found = append(found, ScenarioSubsidy)
	}
	switch len(found) {
	case 0:
		return fmt.Errorf("scenario %q: no calculator block given", s.Name)
	case 1:
		s.Kind = found[0]
		return nil
	default:
		return fmt.Errorf("scenario %q: kind is required when several blocks are given (%v)", s.Name, found)
	}
}
