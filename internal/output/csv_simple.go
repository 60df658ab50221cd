package output

import (
	"bytes"
	"encoding/csv"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Months", "TotalPaidIn", "OwnPaidIn", "FinalCapital", "Profit", "Multiple"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		row := []string{
			sc.Name,
			string(sc.Kind),
			intToString(sc.Months),
			fixed2(sc.TotalPaidIn),
			fixed2(sc.OwnPaidIn),
			fixed2(sc.FinalCapital),
			fixed2(sc.Profit),
			fixed2(sc.Multiple()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
