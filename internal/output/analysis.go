package output

import (
	"sort"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenarios.
type Recommendation struct {
	ScenarioName string // highest final capital
	FinalCapital float64
	Profit       float64
	MultipleName string // best capital per unit of own money
	Multiple     float64
	SubsidyShare float64 // share of paid-in money not funded by the saver
}

// AnalyzeScenarios picks the scenario with the highest final capital and the
// one that turns each unit of own money into the most capital.
// Ties resolve to the scenario listed first.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}

	byCapital := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(byCapital, func(i, j int) bool { return byCapital[i].FinalCapital > byCapital[j].FinalCapital })
	best := byCapital[0]

	rec := Recommendation{
		ScenarioName: best.Name,
		FinalCapital: best.FinalCapital,
		Profit:       best.Profit,
	}
	if best.TotalPaidIn > 0 {
		rec.SubsidyShare = (best.TotalPaidIn - best.OwnPaidIn) / best.TotalPaidIn
	}

	byMultiple := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(byMultiple, func(i, j int) bool { return byMultiple[i].Multiple() > byMultiple[j].Multiple() })
	if m := byMultiple[0]; m.Multiple() > 0 {
		rec.MultipleName = m.Name
		rec.Multiple = m.Multiple()
	}
	return rec
}
