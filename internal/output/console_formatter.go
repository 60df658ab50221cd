package output

import (
	"bytes"
	"fmt"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "VORSORGE SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range sortedScenarios(results) {
		fmt.Fprintf(&buf, "%s [%s]: Capital=%s PaidIn=%s Own=%s Profit=%s Months=%d\n",
			sc.Name,
			sc.Kind,
			FormatAmount(sc.FinalCapital),
			FormatAmount(sc.TotalPaidIn),
			FormatAmount(sc.OwnPaidIn),
			FormatAmount(sc.Profit),
			sc.Months,
		)
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Highest capital: %s (%s)\n", rec.ScenarioName, FormatAmount(rec.FinalCapital))
	}
	if rec.MultipleName != "" {
		fmt.Fprintf(&buf, "Best per own euro: %s (x%s)\n", rec.MultipleName, fixed2(rec.Multiple))
	}
	return buf.Bytes(), nil
}
