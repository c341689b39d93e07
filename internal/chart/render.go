package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"
)

// Render draws the chart for a terminal. Bar-like kinds use pterm's bar
// printer; line and scatter fall back to a character grid.
func Render(c *Chart) string {
	if c == nil || c.Points() == 0 {
		return ""
	}
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title + "\n")
	}
	switch c.Kind {
	case Bar, Histogram, Pie:
		b.WriteString(renderBars(c))
	case Line, Scatter:
		b.WriteString(renderGrid(c))
	default:
		b.WriteString(renderBars(c))
	}
	if c.XLabel != "" || c.YLabel != "" {
		b.WriteString(fmt.Sprintf("x: %s   y: %s\n", c.XLabel, c.YLabel))
	}
	return b.String()
}

// renderBars scales float values into pterm's integer bars. The true value is
// kept visible in the label since scaling changes magnitudes.
func renderBars(c *Chart) string {
	total := 0.0
	maxAbs := 0.0
	for _, v := range c.Values {
		total += v
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	factor := 1.0
	if maxAbs > 0 && maxAbs < 100 {
		factor = 100 / maxAbs
	}
	bars := make([]pterm.Bar, 0, len(c.Values))
	for i, v := range c.Values {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		if c.Kind == Pie && total != 0 {
			label = fmt.Sprintf("%s  %.4g (%.1f%%)", label, v, v*100/total)
		} else {
			label = fmt.Sprintf("%s  %.4g", label, v)
		}
		bars = append(bars, pterm.Bar{Label: label, Value: int(math.Round(v * factor))})
	}
	out, err := pterm.DefaultBarChart.WithHorizontal().WithBars(bars).Srender()
	if err != nil {
		return renderPlain(c)
	}
	return out
}

// renderPlain is a dependency-free fallback when the terminal printer fails.
func renderPlain(c *Chart) string {
	var b strings.Builder
	for i, v := range c.Values {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		b.WriteString(fmt.Sprintf("%-24s %.4g\n", label, v))
	}
	return b.String()
}

const (
	gridWidth  = 60
	gridHeight = 16
)

// renderGrid plots x/y pairs on a fixed character grid.
func renderGrid(c *Chart) string {
	if len(c.X) == 0 || len(c.Y) == 0 {
		return ""
	}
	minX, maxX := minMax(c.X)
	minY, maxY := minMax(c.Y)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	grid := make([][]rune, gridHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", gridWidth))
	}
	mark := '•'
	if c.Kind == Line {
		mark = '*'
	}
	n := len(c.X)
	if len(c.Y) < n {
		n = len(c.Y)
	}
	for i := 0; i < n; i++ {
		col := int((c.X[i] - minX) / spanX * float64(gridWidth-1))
		row := gridHeight - 1 - int((c.Y[i]-minY)/spanY*float64(gridHeight-1))
		grid[row][col] = mark
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%.4g\n", maxY))
	for _, line := range grid {
		b.WriteString("| " + string(line) + "\n")
	}
	b.WriteString("+" + strings.Repeat("-", gridWidth+1) + "\n")
	b.WriteString(fmt.Sprintf("%.4g%s%.4g\n", minX, strings.Repeat(" ", gridWidth-10), maxX))
	return b.String()
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
