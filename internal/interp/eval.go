package interp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

const showMaxRows = 20

// executor walks the parsed statements over a working copy of the table.
type executor struct {
	work      *dataset.Frame
	groupCols []string
	out       []string
	fig       *chart.Chart
}

func (e *executor) exec(stmt statement) error {
	switch s := stmt.(type) {
	case filterStmt:
		return e.execFilter(s)
	case selectStmt:
		return e.execSelect(s)
	case groupStmt:
		return e.execGroup(s)
	case aggStmt:
		return e.execAgg(s)
	case sortStmt:
		f, err := e.work.SortBy(s.col, s.desc)
		if err != nil {
			return err
		}
		e.work = f
		return nil
	case headStmt:
		e.work = e.work.Head(s.n)
		return nil
	case printStmt:
		return e.execPrint(s)
	case showStmt:
		e.out = append(e.out, dataset.FormatTable(e.work, showMaxRows))
		return nil
	case plotStmt:
		return e.execPlot(s)
	default:
		return fmt.Errorf("unhandled statement %q", stmt.verb())
	}
}

func (e *executor) execFilter(s filterStmt) error {
	n := e.work.NumRows()
	keep := make([]bool, n)
	for i := 0; i < n; i++ {
		ok, err := evalBool(s.cond, e.work, i)
		if err != nil {
			return err
		}
		keep[i] = ok
	}
	e.work = e.work.Filter(keep)
	return nil
}

func (e *executor) execSelect(s selectStmt) error {
	f, err := e.work.Select(s.cols)
	if err != nil {
		return err
	}
	e.work = f
	return nil
}

func (e *executor) execGroup(s groupStmt) error {
	for _, name := range s.cols {
		if !e.work.HasColumn(name) {
			return fmt.Errorf("unknown column %q", name)
		}
	}
	e.groupCols = s.cols
	return nil
}

func (e *executor) execAgg(s aggStmt) error {
	if len(e.groupCols) == 0 {
		cols := make([]*dataset.Column, 0, len(s.items))
		for _, item := range s.items {
			v, err := aggregate(e.work, nil, item)
			if err != nil {
				return err
			}
			cols = append(cols, dataset.NewFloatColumn(item.name, []float64{v}))
		}
		f, err := dataset.New(cols...)
		if err != nil {
			return err
		}
		e.work = f
		return nil
	}

	// One output row per distinct key, in first-seen order. A select between
	// group and agg may have dropped a grouping column.
	keyCols := make([]*dataset.Column, len(e.groupCols))
	for i, name := range e.groupCols {
		c := e.work.Column(name)
		if c == nil {
			return fmt.Errorf("grouping column %q is no longer in the table", name)
		}
		keyCols[i] = c
	}
	var order []string
	groups := map[string][]int{}
	for i := 0; i < e.work.NumRows(); i++ {
		parts := make([]string, len(keyCols))
		for j, c := range keyCols {
			parts[j] = c.StringAt(i)
		}
		key := strings.Join(parts, "\x00")
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	reps := make([]int, len(order))
	for i, key := range order {
		reps[i] = groups[key][0]
	}
	keyed, err := e.work.Take(reps).Select(e.groupCols)
	if err != nil {
		return err
	}
	cols := keyed.Columns()
	for _, item := range s.items {
		vals := make([]float64, len(order))
		for i, key := range order {
			v, err := aggregate(e.work, groups[key], item)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		cols = append(cols, dataset.NewFloatColumn(item.name, vals))
	}
	f, err := dataset.New(cols...)
	if err != nil {
		return err
	}
	e.work = f
	e.groupCols = nil
	return nil
}

func (e *executor) execPrint(s printStmt) error {
	parts := make([]string, 0, len(s.args))
	for _, a := range s.args {
		switch {
		case a.isStr:
			parts = append(parts, a.str)
		case a.isNum:
			parts = append(parts, formatNumber(a.num))
		default:
			v, err := aggregate(e.work, nil, *a.agg)
			if err != nil {
				return err
			}
			parts = append(parts, formatNumber(v))
		}
	}
	e.out = append(e.out, strings.Join(parts, " "))
	return nil
}

// evalBool evaluates a filter condition for one row. Rows with a null on
// either side of a comparison never match.
func evalBool(ex expr, f *dataset.Frame, row int) (bool, error) {
	switch v := ex.(type) {
	case notExpr:
		inner, err := evalBool(v.x, f, row)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case binaryExpr:
		switch v.op {
		case "and":
			l, err := evalBool(v.left, f, row)
			if err != nil || !l {
				return false, err
			}
			return evalBool(v.right, f, row)
		case "or":
			l, err := evalBool(v.left, f, row)
			if err != nil || l {
				return l, err
			}
			return evalBool(v.right, f, row)
		default:
			return evalCompare(v, f, row)
		}
	default:
		return false, fmt.Errorf("a filter condition must be a comparison")
	}
}

func evalCompare(b binaryExpr, f *dataset.Frame, row int) (bool, error) {
	lv, lNull, err := evalOperand(b.left, f, row)
	if err != nil {
		return false, err
	}
	rv, rNull, err := evalOperand(b.right, f, row)
	if err != nil {
		return false, err
	}
	if lNull || rNull {
		return false, nil
	}
	if lv.isNum != rv.isNum {
		return false, fmt.Errorf("cannot compare %s with %s", lv.kind(), rv.kind())
	}
	var cmp int
	if lv.isNum {
		switch {
		case lv.num < rv.num:
			cmp = -1
		case lv.num > rv.num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(lv.str, rv.str)
	}
	switch b.op {
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	}
	return false, fmt.Errorf("unknown operator %q", b.op)
}

type value struct {
	isNum bool
	num   float64
	str   string
}

func (v value) kind() string {
	if v.isNum {
		return "a number"
	}
	return "a string"
}

func evalOperand(ex expr, f *dataset.Frame, row int) (value, bool, error) {
	switch v := ex.(type) {
	case literal:
		return value{isNum: v.isNum, num: v.num, str: v.str}, false, nil
	case columnRef:
		c := f.Column(v.name)
		if c == nil {
			return value{}, false, fmt.Errorf("unknown column %q", v.name)
		}
		if c.IsNull(row) {
			return value{}, true, nil
		}
		if c.IsNumeric() {
			n, _ := c.FloatAt(row)
			return value{isNum: true, num: n}, false, nil
		}
		return value{str: c.StringAt(row)}, false, nil
	default:
		return value{}, false, fmt.Errorf("a comparison operand must be a column or a literal")
	}
}

// aggregate computes one aggregate over the given row indices, or over every
// row when idx is nil. Nulls are skipped.
func aggregate(f *dataset.Frame, idx []int, item aggItem) (float64, error) {
	if item.col == "*" {
		if idx == nil {
			return float64(f.NumRows()), nil
		}
		return float64(len(idx)), nil
	}
	c := f.Column(item.col)
	if c == nil {
		return 0, fmt.Errorf("unknown column %q", item.col)
	}
	if item.fn != "count" && !c.IsNumeric() {
		return 0, fmt.Errorf("%s needs a numeric column, %s is %s", item.fn, item.col, c.Kind)
	}
	rows := idx
	if rows == nil {
		rows = make([]int, f.NumRows())
		for i := range rows {
			rows[i] = i
		}
	}
	var vals []float64
	nonNull := 0
	for _, i := range rows {
		if c.IsNull(i) {
			continue
		}
		nonNull++
		if c.IsNumeric() {
			n, _ := c.FloatAt(i)
			vals = append(vals, n)
		}
	}
	switch item.fn {
	case "count":
		return float64(nonNull), nil
	case "sum":
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total, nil
	case "mean":
		if len(vals) == 0 {
			return 0, fmt.Errorf("mean(%s) over no values", item.col)
		}
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total / float64(len(vals)), nil
	case "median":
		if len(vals) == 0 {
			return 0, fmt.Errorf("median(%s) over no values", item.col)
		}
		sort.Float64s(vals)
		mid := len(vals) / 2
		if len(vals)%2 == 0 {
			return (vals[mid-1] + vals[mid]) / 2, nil
		}
		return vals[mid], nil
	case "min":
		if len(vals) == 0 {
			return 0, fmt.Errorf("min(%s) over no values", item.col)
		}
		m := vals[0]
		for _, v := range vals[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	case "max":
		if len(vals) == 0 {
			return 0, fmt.Errorf("max(%s) over no values", item.col)
		}
		m := vals[0]
		for _, v := range vals[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	}
	return 0, fmt.Errorf("unknown aggregate function %q", item.fn)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
