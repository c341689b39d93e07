package chart

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const dataSheet = "Data"

// ExportXLSX writes the chart's backing data and a native spreadsheet chart
// to path. Line and scatter charts export their coordinate pairs; the other
// kinds export label/value rows.
func ExportXLSX(c *Chart, path string) error {
	if c == nil || c.Points() == 0 {
		return fmt.Errorf("nothing to export: chart has no data")
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	var rows int
	switch c.Kind {
	case Line, Scatter:
		header := []any{nonEmpty(c.XLabel, "x"), nonEmpty(c.YLabel, "y")}
		if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		rows = len(c.X)
		for i := 0; i < rows; i++ {
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(dataSheet, cell, &[]any{c.X[i], c.Y[i]}); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	default:
		header := []any{nonEmpty(c.XLabel, "label"), nonEmpty(c.YLabel, "value")}
		if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		rows = len(c.Values)
		for i := 0; i < rows; i++ {
			label := ""
			if i < len(c.Labels) {
				label = c.Labels[i]
			}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(dataSheet, cell, &[]any{label, c.Values[i]}); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	spec := &excelize.Chart{
		Type: chartType(c.Kind),
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", dataSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, rows+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, rows+1),
		}},
	}
	if c.Title != "" {
		spec.Title = []excelize.RichTextRun{{Text: c.Title}}
	}
	if err := f.AddChart(dataSheet, "D2", spec); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func chartType(k Kind) excelize.ChartType {
	switch k {
	case Line:
		return excelize.Line
	case Scatter:
		return excelize.Scatter
	case Pie:
		return excelize.Pie
	default:
		// Bar and histogram both map to a column chart.
		return excelize.Col
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
