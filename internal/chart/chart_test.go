package chart_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/xuri/excelize/v2"
)

func barChart() *chart.Chart {
	return &chart.Chart{
		Kind:   chart.Bar,
		Title:  "Survivors by class",
		XLabel: "Pclass",
		YLabel: "count",
		Labels: []string{"1", "2", "3"},
		Values: []float64{136, 87, 119},
	}
}

func TestPoints(t *testing.T) {
	cases := []struct {
		name string
		c    *chart.Chart
		want int
	}{
		{"nil", nil, 0},
		{"bar", barChart(), 3},
		{"scatter", &chart.Chart{Kind: chart.Scatter, X: []float64{1, 2}, Y: []float64{3, 4}}, 2},
		{"empty", &chart.Chart{Kind: chart.Pie}, 0},
	}
	for _, c := range cases {
		if got := c.c.Points(); got != c.want {
			t.Errorf("%s: Points = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	out := chart.Render(barChart())
	if out == "" {
		t.Fatalf("empty render")
	}
	if !strings.Contains(out, "Survivors by class") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "x: Pclass") {
		t.Errorf("missing axis labels:\n%s", out)
	}
	// True values stay visible next to the scaled bars.
	if !strings.Contains(out, "136") {
		t.Errorf("missing value label:\n%s", out)
	}
}

func TestRenderScatterGrid(t *testing.T) {
	c := &chart.Chart{
		Kind: chart.Scatter,
		X:    []float64{1, 2, 3, 4},
		Y:    []float64{10, 20, 15, 40},
	}
	out := chart.Render(c)
	if !strings.Contains(out, "•") {
		t.Errorf("scatter grid missing points:\n%s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := chart.Render(nil); out != "" {
		t.Errorf("nil chart rendered %q", out)
	}
	if out := chart.Render(&chart.Chart{Kind: chart.Bar}); out != "" {
		t.Errorf("empty chart rendered %q", out)
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := chart.ExportXLSX(barChart(), path); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "Pclass" || rows[1][0] != "1" {
		t.Errorf("unexpected sheet contents: %v", rows[:2])
	}
}

func TestExportXLSXEmptyChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := chart.ExportXLSX(&chart.Chart{Kind: chart.Bar}, path); err == nil {
		t.Fatalf("expected error for empty chart")
	}
}
