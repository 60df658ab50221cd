package output

import (
	"fmt"

	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetScenarios   = "Szenarien"
	sheetTimeline    = "Zeitverlauf"
	sheetAssumptions = "Annahmen"
)

// XLSXFormatter writes a workbook with a summary, a yearly timeline and the
// assumptions on separate sheets. Amounts are numeric cells.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheetScenarios); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(sheetTimeline); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(sheetAssumptions); err != nil {
		return nil, err
	}

	header, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DBEAFE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	money, err := wb.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	scenarios := sortedScenarios(results)

	summary := [][]any{{"Szenario", "Art", "Endkapital", "Eingezahlt", "Eigenanteil", "Ertrag", "Monate", "Vielfaches"}}
	for _, sc := range scenarios {
		summary = append(summary, []any{
			sc.Name, string(sc.Kind), sc.FinalCapital, sc.TotalPaidIn, sc.OwnPaidIn, sc.Profit, sc.Months, sc.Multiple(),
		})
	}
	if err := writeRows(wb, sheetScenarios, summary); err != nil {
		return nil, err
	}

	timeline := [][]any{{"Szenario", "Jahr", "Eingezahlt", "Kapital", "Ertrag"}}
	for _, sc := range scenarios {
		for _, yr := range sc.Timeline {
			timeline = append(timeline, []any{sc.Name, yr.Year, yr.CumulativePaidIn, yr.EndOfYearBalance, yr.Gain()})
		}
	}
	if err := writeRows(wb, sheetTimeline, timeline); err != nil {
		return nil, err
	}

	assumptions := [][]any{{"Annahme"}}
	for _, a := range assumptionsOf(results) {
		assumptions = append(assumptions, []any{a})
	}
	if err := writeRows(wb, sheetAssumptions, assumptions); err != nil {
		return nil, err
	}

	styles := []struct {
		sheet      string
		headerEnd  string
		moneyStart string
		moneyEnd   string
		rows       int
	}{
		{sheetScenarios, "H1", "C", "F", len(summary)},
		{sheetTimeline, "E1", "C", "E", len(timeline)},
		{sheetAssumptions, "A1", "", "", len(assumptions)},
	}
	for _, s := range styles {
		if err := wb.SetCellStyle(s.sheet, "A1", s.headerEnd, header); err != nil {
			return nil, err
		}
		if s.moneyStart != "" && s.rows > 1 {
			if err := wb.SetCellStyle(s.sheet, s.moneyStart+"2", fmt.Sprintf("%s%d", s.moneyEnd, s.rows), money); err != nil {
				return nil, err
			}
		}
		if err := wb.SetColWidth(s.sheet, "A", "A", 32); err != nil {
			return nil, err
		}
	}
	if err := wb.SetColWidth(sheetAssumptions, "A", "A", 110); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(wb *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
