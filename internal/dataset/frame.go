package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "string"
	}
}

// Column is a typed, nullable vector of values sharing one name. Exactly one
// of the backing slices is populated, chosen by Kind; Valid marks non-null
// cells.
type Column struct {
	Name   string
	Kind   Kind
	Ints   []int64
	Floats []float64
	Strs   []string
	Valid  []bool
}

// NewIntColumn builds a fully valid int column.
func NewIntColumn(name string, vals []int64) *Column {
	return &Column{Name: name, Kind: KindInt, Ints: vals, Valid: allValid(len(vals))}
}

// NewFloatColumn builds a float column; NaN cells are recorded as null.
func NewFloatColumn(name string, vals []float64) *Column {
	valid := make([]bool, len(vals))
	for i, v := range vals {
		valid[i] = !math.IsNaN(v)
	}
	return &Column{Name: name, Kind: KindFloat, Floats: vals, Valid: valid}
}

// NewStringColumn builds a string column; empty cells are recorded as null.
func NewStringColumn(name string, vals []string) *Column {
	valid := make([]bool, len(vals))
	for i, v := range vals {
		valid[i] = v != ""
	}
	return &Column{Name: name, Kind: KindString, Strs: vals, Valid: valid}
}

func allValid(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Strs)
	}
}

// IsNull reports whether row i holds no value.
func (c *Column) IsNull(i int) bool {
	return i >= len(c.Valid) || !c.Valid[i]
}

// FloatAt returns the numeric value at row i. String columns and null cells
// report ok=false.
func (c *Column) FloatAt(i int) (float64, bool) {
	if c.IsNull(i) {
		return 0, false
	}
	switch c.Kind {
	case KindInt:
		return float64(c.Ints[i]), true
	case KindFloat:
		return c.Floats[i], true
	default:
		return 0, false
	}
}

// StringAt renders the cell at row i for display. Null cells render empty.
func (c *Column) StringAt(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Ints[i], 10)
	case KindFloat:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	default:
		return c.Strs[i]
	}
}

// IsNumeric reports whether the column carries numeric values.
func (c *Column) IsNumeric() bool { return c.Kind == KindInt || c.Kind == KindFloat }

func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	out.Ints = append([]int64(nil), c.Ints...)
	out.Floats = append([]float64(nil), c.Floats...)
	out.Strs = append([]string(nil), c.Strs...)
	out.Valid = append([]bool(nil), c.Valid...)
	return out
}

// take builds a new column from the given row indices.
func (c *Column) take(idx []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Valid: make([]bool, len(idx))}
	switch c.Kind {
	case KindInt:
		out.Ints = make([]int64, len(idx))
		for j, i := range idx {
			out.Ints[j] = c.Ints[i]
		}
	case KindFloat:
		out.Floats = make([]float64, len(idx))
		for j, i := range idx {
			out.Floats[j] = c.Floats[i]
		}
	default:
		out.Strs = make([]string, len(idx))
		for j, i := range idx {
			out.Strs[j] = c.Strs[i]
		}
	}
	for j, i := range idx {
		out.Valid[j] = i < len(c.Valid) && c.Valid[i]
	}
	return out
}

// Frame is an ordered collection of equal-length columns sharing one schema.
// The canonical frame is owned by the assistant; executions only ever see
// clones, so nothing a script does can reach the original.
type Frame struct {
	cols   []*Column
	byName map[string]*Column
}

// New assembles a frame from columns. All columns must share one length and
// carry distinct names.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{byName: make(map[string]*Column, len(cols))}
	rows := -1
	for _, c := range cols {
		if rows >= 0 && c.Len() != rows {
			return nil, fmt.Errorf("column %s: length %d, want %d", c.Name, c.Len(), rows)
		}
		rows = c.Len()
		if _, dup := f.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", c.Name)
		}
		f.cols = append(f.cols, c)
		f.byName[c.Name] = c
	}
	return f, nil
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns column names in schema order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the named column, or nil when absent.
func (f *Frame) Column(name string) *Column { return f.byName[name] }

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool { return f.byName[name] != nil }

// Columns returns the columns in schema order.
func (f *Frame) Columns() []*Column { return f.cols }

// AddColumn appends a column; its length must match the frame.
func (f *Frame) AddColumn(c *Column) error {
	if len(f.cols) > 0 && c.Len() != f.NumRows() {
		return fmt.Errorf("column %s: length %d, want %d", c.Name, c.Len(), f.NumRows())
	}
	if _, dup := f.byName[c.Name]; dup {
		return fmt.Errorf("duplicate column name: %s", c.Name)
	}
	f.cols = append(f.cols, c)
	f.byName[c.Name] = c
	return nil
}

// Clone returns a deep working copy. Every execution receives its own clone.
func (f *Frame) Clone() *Frame {
	out := &Frame{byName: make(map[string]*Column, len(f.cols))}
	for _, c := range f.cols {
		cc := c.clone()
		out.cols = append(out.cols, cc)
		out.byName[cc.Name] = cc
	}
	return out
}

// Take returns a new frame holding the given rows, in order.
func (f *Frame) Take(idx []int) *Frame {
	out := &Frame{byName: make(map[string]*Column, len(f.cols))}
	for _, c := range f.cols {
		tc := c.take(idx)
		out.cols = append(out.cols, tc)
		out.byName[tc.Name] = tc
	}
	return out
}

// Filter returns a new frame holding only rows where keep is true.
func (f *Frame) Filter(keep []bool) *Frame {
	idx := make([]int, 0, len(keep))
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}
	return f.Take(idx)
}

// Select returns a new frame restricted to the named columns, in the given
// order. Unknown names are an error.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := &Frame{byName: make(map[string]*Column, len(names))}
	for _, n := range names {
		c := f.byName[n]
		if c == nil {
			return nil, fmt.Errorf("unknown column: %s", n)
		}
		cc := c.clone()
		out.cols = append(out.cols, cc)
		out.byName[n] = cc
	}
	return out, nil
}

// SortBy returns a new frame ordered by the named column. Nulls sort last
// regardless of direction; the sort is stable.
func (f *Frame) SortBy(name string, descending bool) (*Frame, error) {
	c := f.byName[name]
	if c == nil {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	idx := make([]int, f.NumRows())
	for i := range idx {
		idx[i] = i
	}
	less := func(a, b int) bool {
		na, nb := c.IsNull(a), c.IsNull(b)
		if na || nb {
			return !na && nb
		}
		if c.IsNumeric() {
			va, _ := c.FloatAt(a)
			vb, _ := c.FloatAt(b)
			if descending {
				return va > vb
			}
			return va < vb
		}
		if descending {
			return c.Strs[a] > c.Strs[b]
		}
		return c.Strs[a] < c.Strs[b]
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
	return f.Take(idx), nil
}

// Head returns a new frame holding at most n leading rows.
func (f *Frame) Head(n int) *Frame {
	if n > f.NumRows() {
		n = f.NumRows()
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return f.Take(idx)
}
