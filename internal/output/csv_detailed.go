package output

import (
	"bytes"
	"encoding/csv"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// CSVDetailedExporter provides the yearly timeline per scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Year", "CumulativePaidIn", "EndOfYearBalance", "Gain", "IsFinal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		for i, yr := range sc.Timeline {
			row := []string{
				sc.Name,
				string(sc.Kind),
				intToString(yr.Year),
				fixed2(yr.CumulativePaidIn),
				fixed2(yr.EndOfYearBalance),
				fixed2(yr.Gain()),
				boolToString(i == len(sc.Timeline)-1),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
