package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// columnNotes are the prompt-facing semantics of each column, in schema order.
var columnNotes = []struct{ Name, Note string }{
	{"PassengerId", "Unique identifier (int)"},
	{"Survived", "Target variable (0=died, 1=survived)"},
	{"Pclass", "Passenger class (1=1st class, 2=2nd class, 3=3rd class)"},
	{"Name", "Full passenger name with title (string)"},
	{"Sex", "Gender ('male' or 'female' - NOT encoded)"},
	{"Sex_encoded", "Encoded gender (0=male, 1=female)"},
	{"Age", "Age in years (float, missing values filled with median)"},
	{"SibSp", "Number of siblings/spouses aboard"},
	{"Parch", "Number of parents/children aboard"},
	{"Ticket", "Ticket number (string)"},
	{"Fare", "Passenger fare (float, missing values filled with median)"},
	{"Cabin", "Cabin number (string, many missing values)"},
	{"Embarked", "Port of embarkation ('C'=Cherbourg, 'Q'=Queenstown, 'S'=Southampton)"},
	{"Embarked_encoded", "Encoded embarkation port (0=C, 1=Q, 2=S)"},
}

// Describe renders per-column statistics for all numeric columns: count,
// mean, std, min, quartiles, max.
func Describe(f *Frame) string {
	type colStats struct {
		name                string
		count               int
		mean, std           float64
		min, q1, q2, q3, mx float64
	}
	var stats []colStats
	for _, c := range f.Columns() {
		if !c.IsNumeric() {
			continue
		}
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.FloatAt(i); ok && !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		mean := 0.0
		for _, v := range vals {
			mean += v
		}
		mean /= float64(len(vals))
		variance := 0.0
		for _, v := range vals {
			variance += (v - mean) * (v - mean)
		}
		std := 0.0
		if len(vals) > 1 {
			std = math.Sqrt(variance / float64(len(vals)-1))
		}
		stats = append(stats, colStats{
			name:  c.Name,
			count: len(vals),
			mean:  mean,
			std:   std,
			min:   vals[0],
			q1:    quantile(vals, 0.25),
			q2:    quantile(vals, 0.5),
			q3:    quantile(vals, 0.75),
			mx:    vals[len(vals)-1],
		})
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-18s %8s %10s %10s %10s %10s %10s %10s %10s\n",
		"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"))
	for _, s := range stats {
		b.WriteString(fmt.Sprintf("%-18s %8d %10.4g %10.4g %10.4g %10.4g %10.4g %10.4g %10.4g\n",
			s.name, s.count, s.mean, s.std, s.min, s.q1, s.q2, s.q3, s.mx))
	}
	return b.String()
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Info renders the dataset information block embedded in every prompt:
// shape, column semantics, survival counts, sample rows and the statistical
// summary.
func Info(f *Frame) string {
	s := Summarize(f)
	survivors := int(math.Round(s.SurvivalRate * float64(s.Rows)))

	var b strings.Builder
	b.WriteString("TITANIC DATASET INFORMATION:\n")
	b.WriteString("============================\n\n")
	b.WriteString(fmt.Sprintf("Table shape: (%d, %d)\n", s.Rows, s.Cols))
	b.WriteString(fmt.Sprintf("Total passengers: %d\n\n", s.Rows))

	b.WriteString("COLUMN DETAILS:\n")
	for _, cn := range columnNotes {
		if f.HasColumn(cn.Name) {
			b.WriteString(fmt.Sprintf("- %s: %s\n", cn.Name, cn.Note))
		}
	}

	b.WriteString("\nSURVIVAL STATISTICS:\n")
	b.WriteString(fmt.Sprintf("- Survivors: %d (%.1f%%)\n", survivors, s.SurvivalRate*100))
	b.WriteString(fmt.Sprintf("- Non-survivors: %d (%.1f%%)\n", s.Rows-survivors, (1-s.SurvivalRate)*100))

	b.WriteString("\nSAMPLE DATA (first 3 rows):\n")
	b.WriteString(FormatTable(f.Head(3), 3))

	b.WriteString("\nSTATISTICAL SUMMARY:\n")
	b.WriteString(Describe(f))
	return b.String()
}
