package chart

// Kind identifies the plot family a chart belongs to.
type Kind string

const (
	Bar       Kind = "bar"
	Histogram Kind = "hist"
	Line      Kind = "line"
	Scatter   Kind = "scatter"
	Pie       Kind = "pie"
)

// Chart is an explicit, per-execution plot specification. It is produced by
// the interpreter's plot statement and consumed by renderers; no process-wide
// plotting state is involved.
type Chart struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	// Bar, Histogram and Pie carry one value per label.
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`

	// Line and Scatter carry paired coordinates.
	X []float64 `json:"x,omitempty"`
	Y []float64 `json:"y,omitempty"`
}

// Points returns the number of data points the chart carries.
func (c *Chart) Points() int {
	if c == nil {
		return 0
	}
	switch c.Kind {
	case Line, Scatter:
		return len(c.X)
	default:
		return len(c.Values)
	}
}
