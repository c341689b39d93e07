package dataset

import (
	"fmt"
	"strings"
)

// Summary holds dataset-wide statistics for display. It is recomputed on
// every call; nothing here is cached or mutated afterwards.
type Summary struct {
	Rows          int
	Cols          int
	Columns       []string
	Dtypes        map[string]string
	MissingCounts map[string]int
	SampleRows    [][]string
	SurvivalRate  float64
	ClassCounts   map[int64]int
	GenderCounts  map[string]int
}

// Summarize computes the summary of the canonical table. Pure and read-only:
// two calls without an intervening mutation yield identical results.
func Summarize(f *Frame) Summary {
	s := Summary{
		Rows:          f.NumRows(),
		Cols:          f.NumCols(),
		Columns:       f.Names(),
		Dtypes:        make(map[string]string, f.NumCols()),
		MissingCounts: make(map[string]int, f.NumCols()),
		ClassCounts:   make(map[int64]int),
		GenderCounts:  make(map[string]int),
	}
	for _, c := range f.Columns() {
		s.Dtypes[c.Name] = c.Kind.String()
		miss := 0
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				miss++
			}
		}
		s.MissingCounts[c.Name] = miss
	}

	head := f.Head(5)
	s.SampleRows = make([][]string, head.NumRows())
	for i := range s.SampleRows {
		row := make([]string, head.NumCols())
		for j, c := range head.Columns() {
			row[j] = c.StringAt(i)
		}
		s.SampleRows[i] = row
	}

	if surv := f.Column("Survived"); surv != nil && surv.Len() > 0 {
		sum := 0.0
		n := 0
		for i := 0; i < surv.Len(); i++ {
			if v, ok := surv.FloatAt(i); ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			s.SurvivalRate = sum / float64(n)
		}
	}
	if cls := f.Column("Pclass"); cls != nil {
		for i := 0; i < cls.Len(); i++ {
			if !cls.IsNull(i) {
				s.ClassCounts[cls.Ints[i]]++
			}
		}
	}
	if sex := f.Column("Sex"); sex != nil {
		for i := 0; i < sex.Len(); i++ {
			if !sex.IsNull(i) {
				s.GenderCounts[sex.Strs[i]]++
			}
		}
	}
	return s
}

// FormatTable renders a frame as an aligned text table, truncated to maxRows
// data rows (0 means no limit).
func FormatTable(f *Frame, maxRows int) string {
	cols := f.Columns()
	if len(cols) == 0 {
		return "(empty table)\n"
	}
	rows := f.NumRows()
	shown := rows
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}

	widths := make([]int, len(cols))
	cells := make([][]string, shown+1)
	cells[0] = make([]string, len(cols))
	for j, c := range cols {
		cells[0][j] = c.Name
		widths[j] = len(c.Name)
	}
	for i := 0; i < shown; i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			v := c.StringAt(i)
			row[j] = v
			if len(v) > widths[j] {
				widths[j] = len(v)
			}
		}
		cells[i+1] = row
	}

	var b strings.Builder
	for _, row := range cells {
		for j, v := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(fmt.Sprintf("%-*s", widths[j], v))
		}
		b.WriteString("\n")
	}
	if shown < rows {
		b.WriteString(fmt.Sprintf("… (%d more rows)\n", rows-shown))
	}
	return b.String()
}
