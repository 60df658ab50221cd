package output

import (
	"io"
	"os"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders results with the named formatter and writes them to a
// timestamped file in the working directory. "all" writes the verbose console
// report and the detailed CSV.
func GenerateReport(results *domain.ScenarioComparison, format string) (string, error) {
	if NormalizeFormatName(format) == "all" {
		name, err := WriteFormatted(ConsoleVerboseFormatter{}, results, "txt")
		if err != nil {
			return "", err
		}
		if _, err := WriteFormatted(CSVDetailedExporter{}, results, "csv"); err != nil {
			return "", err
		}
		return name, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return "", unsupported(format)
	}
	return WriteFormatted(f, results, FileExtension(f))
}

// RenderReport writes the named format to w.
func RenderReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
