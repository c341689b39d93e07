package interp

import (
	"fmt"
	"sort"

	"github.com/DataBuoy/databuoy-cli/internal/chart"
)

const defaultBins = 10

// execPlot builds a chart from the working table. When a script plots more
// than once, the most recent plot statement wins.
func (e *executor) execPlot(s plotStmt) error {
	xName := s.args["x"].str
	xCol := e.work.Column(xName)
	if xCol == nil {
		return fmt.Errorf("unknown column %q", xName)
	}

	c := &chart.Chart{
		Title:  s.args["title"].str,
		XLabel: s.args["xlabel"].str,
		YLabel: s.args["ylabel"].str,
	}
	if c.XLabel == "" {
		c.XLabel = xName
	}

	switch s.kind {
	case "bar", "pie":
		if s.kind == "pie" {
			c.Kind = chart.Pie
		} else {
			c.Kind = chart.Bar
		}
		if yArg, ok := s.args["y"]; ok {
			yCol := e.work.Column(yArg.str)
			if yCol == nil {
				return fmt.Errorf("unknown column %q", yArg.str)
			}
			if !yCol.IsNumeric() {
				return fmt.Errorf("y column %q must be numeric", yArg.str)
			}
			for i := 0; i < e.work.NumRows(); i++ {
				if xCol.IsNull(i) || yCol.IsNull(i) {
					continue
				}
				v, _ := yCol.FloatAt(i)
				c.Labels = append(c.Labels, xCol.StringAt(i))
				c.Values = append(c.Values, v)
			}
			if c.YLabel == "" {
				c.YLabel = yArg.str
			}
		} else {
			c.Labels, c.Values = categoryCounts(xCol, e.work.NumRows())
			if c.YLabel == "" {
				c.YLabel = "count"
			}
		}
	case "hist":
		if !xCol.IsNumeric() {
			return fmt.Errorf("hist needs a numeric column, %s is %s", xName, xCol.Kind)
		}
		bins := defaultBins
		if b, ok := s.args["bins"]; ok {
			bins = int(b.num)
		}
		labels, values, err := histogram(xCol, e.work.NumRows(), bins)
		if err != nil {
			return err
		}
		c.Kind = chart.Histogram
		c.Labels, c.Values = labels, values
		if c.YLabel == "" {
			c.YLabel = "count"
		}
	case "line", "scatter":
		yArg, ok := s.args["y"]
		if !ok {
			return fmt.Errorf("plot %s needs y=<column>", s.kind)
		}
		yCol := e.work.Column(yArg.str)
		if yCol == nil {
			return fmt.Errorf("unknown column %q", yArg.str)
		}
		if !xCol.IsNumeric() || !yCol.IsNumeric() {
			return fmt.Errorf("plot %s needs numeric x and y columns", s.kind)
		}
		for i := 0; i < e.work.NumRows(); i++ {
			if xCol.IsNull(i) || yCol.IsNull(i) {
				continue
			}
			xv, _ := xCol.FloatAt(i)
			yv, _ := yCol.FloatAt(i)
			c.X = append(c.X, xv)
			c.Y = append(c.Y, yv)
		}
		if s.kind == "line" {
			c.Kind = chart.Line
			sortByX(c.X, c.Y)
		} else {
			c.Kind = chart.Scatter
		}
		if c.YLabel == "" {
			c.YLabel = yArg.str
		}
	}

	if c.Points() == 0 {
		return fmt.Errorf("plot %s over no data points", s.kind)
	}
	e.fig = c
	return nil
}

// categoryCounts tallies non-null values of a column in first-seen order.
func categoryCounts(c interface {
	IsNull(int) bool
	StringAt(int) string
}, n int) ([]string, []float64) {
	var labels []string
	counts := map[string]float64{}
	for i := 0; i < n; i++ {
		if c.IsNull(i) {
			continue
		}
		s := c.StringAt(i)
		if _, seen := counts[s]; !seen {
			labels = append(labels, s)
		}
		counts[s]++
	}
	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = counts[l]
	}
	return labels, values
}

func histogram(c interface {
	IsNull(int) bool
	FloatAt(int) (float64, bool)
}, n, bins int) ([]string, []float64, error) {
	var vals []float64
	for i := 0; i < n; i++ {
		if c.IsNull(i) {
			continue
		}
		v, _ := c.FloatAt(i)
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, nil, fmt.Errorf("hist over no values")
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []string{formatNumber(lo)}, []float64{float64(len(vals))}, nil
	}
	width := (hi - lo) / float64(bins)
	values := make([]float64, bins)
	for _, v := range vals {
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		values[b]++
	}
	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s-%s", formatNumber(lo+float64(i)*width), formatNumber(lo+float64(i+1)*width))
	}
	return labels, values, nil
}

func sortByX(x, y []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, j := range idx {
		xs[i], ys[i] = x[j], y[j]
	}
	copy(x, xs)
	copy(y, ys)
}
