package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with one chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"amount": FormatAmount,
	"pct":    FormatPercentFloat,
	"rate":   FormatRate,
	"fixed":  fixed2,
	"add":    func(i, j int) int { return i + j },
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
	}{results, AnalyzeScenarios(results), assumptionsOf(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
