package output

import (
	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered when results carry none.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultSubsidyRules())

// GenerateAssumptions creates the assumptions list from the rules in effect
func GenerateAssumptions(rules domain.SubsidyRules) []string {
	return calculation.NewCalculationEngineWithRules(rules).GenerateAssumptions(rules)
}

func assumptionsOf(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return DefaultAssumptions
}
