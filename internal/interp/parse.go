package interp

import (
	"fmt"
	"math"
	"strings"
)

// A statement is one parsed line of a script.
type statement interface {
	verb() string
}

type filterStmt struct{ cond expr }
type selectStmt struct{ cols []string }
type groupStmt struct{ cols []string }
type aggStmt struct{ items []aggItem }
type sortStmt struct {
	col  string
	desc bool
}
type headStmt struct{ n int }
type printStmt struct{ args []printArg }
type showStmt struct{}
type plotStmt struct {
	kind string
	args map[string]plotArg
}

func (filterStmt) verb() string { return "filter" }
func (selectStmt) verb() string { return "select" }
func (groupStmt) verb() string  { return "group" }
func (aggStmt) verb() string    { return "agg" }
func (sortStmt) verb() string   { return "sort" }
func (headStmt) verb() string   { return "head" }
func (printStmt) verb() string  { return "print" }
func (showStmt) verb() string   { return "show" }
func (plotStmt) verb() string   { return "plot" }

// aggItem is one "fn(col) as name" clause. col is "*" for count(*).
type aggItem struct {
	fn   string
	col  string
	name string
}

// printArg is either a literal or an inline aggregate over the working table.
type printArg struct {
	isStr bool
	str   string
	isNum bool
	num   float64
	agg   *aggItem
}

// plotArg holds one key=value pair from a plot statement.
type plotArg struct {
	isStr bool
	str   string
	num   float64
}

// Expressions for filter conditions.
type expr interface{ exprNode() }

type binaryExpr struct {
	op          string
	left, right expr
}
type notExpr struct{ x expr }
type columnRef struct{ name string }
type literal struct {
	isNum bool
	num   float64
	str   string
}

func (binaryExpr) exprNode() {}
func (notExpr) exprNode()    {}
func (columnRef) exprNode()  {}
func (literal) exprNode()    {}

type parsedLine struct {
	num  int
	text string
	stmt statement
}

var aggFuncs = map[string]bool{
	"count": true, "sum": true, "mean": true,
	"median": true, "min": true, "max": true,
}

var plotKinds = map[string]bool{
	"bar": true, "hist": true, "line": true, "scatter": true, "pie": true,
}

var statementVerbs = map[string]bool{
	"filter": true, "select": true, "group": true, "agg": true,
	"sort": true, "head": true, "print": true, "show": true, "plot": true,
}

// parseScript parses a whole script into statements. The returned error
// carries the 1-based line number of the failing statement.
func parseScript(code string) ([]parsedLine, int, error) {
	var out []parsedLine
	for i, raw := range strings.Split(code, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		stmt, err := parseLine(line)
		if err != nil {
			return nil, i + 1, err
		}
		out = append(out, parsedLine{num: i + 1, text: line, stmt: stmt})
	}
	return out, 0, nil
}

type parser struct {
	toks []token
	pos  int
}

func parseLine(line string) (statement, error) {
	// Check the verb before lexing so an unknown statement is reported as
	// such, whatever characters follow it.
	verb := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		verb = line[:i]
	}
	if !statementVerbs[verb] {
		return nil, fmt.Errorf("unknown statement %q", verb)
	}
	toks, err := lexLine(line)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	head := p.peek()
	if head.kind != tokIdent {
		return nil, fmt.Errorf("expected a statement, got %q", head.text)
	}
	var stmt statement
	switch head.text {
	case "filter":
		p.next()
		stmt, err = p.parseFilter()
	case "select":
		p.next()
		stmt, err = p.parseSelect()
	case "group":
		p.next()
		stmt, err = p.parseGroup()
	case "agg":
		p.next()
		stmt, err = p.parseAgg()
	case "sort":
		p.next()
		stmt, err = p.parseSort()
	case "head":
		p.next()
		stmt, err = p.parseHead()
	case "print":
		p.next()
		stmt, err = p.parsePrint()
	case "show":
		p.next()
		stmt = showStmt{}
	case "plot":
		p.next()
		stmt, err = p.parsePlot()
	default:
		return nil, fmt.Errorf("unknown statement %q", head.text)
	}
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q after %s statement", t.text, stmt.verb())
	}
	return stmt, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectOp(op string) error {
	t := p.next()
	if t.kind != tokOp || t.text != op {
		return fmt.Errorf("expected %q, got %q", op, t.text)
	}
	return nil
}

func (p *parser) ident() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", fmt.Errorf("expected an identifier, got %q", t.text)
	}
	return t.text, nil
}

// filter <boolexpr>
func (p *parser) parseFilter() (statement, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return filterStmt{cond: cond}, nil
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIdent && p.peek().text == "or" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIdent && p.peek().text == "and" {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (expr, error) {
	if p.peek().kind == tokIdent && p.peek().text == "not" {
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notExpr{x: x}, nil
	}
	// Parentheses group whole conditions, not comparison operands.
	if t := p.peek(); t.kind == tokOp && t.text == "(" {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokOp {
		return nil, fmt.Errorf("expected a comparison operator, got %q", t.text)
	}
	switch t.text {
	case "==", "!=", ">", ">=", "<", "<=":
		p.next()
	case ")":
		return nil, fmt.Errorf("expected a comparison operator, got %q", t.text)
	default:
		return nil, fmt.Errorf("unknown operator %q", t.text)
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return binaryExpr{op: t.text, left: left, right: right}, nil
}

func (p *parser) parseOperand() (expr, error) {
	t := p.peek()
	switch {
	case t.kind == tokIdent:
		p.next()
		return columnRef{name: t.text}, nil
	case t.kind == tokNumber:
		p.next()
		return literal{isNum: true, num: t.num}, nil
	case t.kind == tokString:
		p.next()
		return literal{str: t.text}, nil
	default:
		return nil, fmt.Errorf("expected a column, number, or string, got %q", t.text)
	}
}

// select col [, col]...
func (p *parser) parseSelect() (statement, error) {
	cols, err := p.identList()
	if err != nil {
		return nil, err
	}
	return selectStmt{cols: cols}, nil
}

// group col [, col]...
func (p *parser) parseGroup() (statement, error) {
	cols, err := p.identList()
	if err != nil {
		return nil, err
	}
	return groupStmt{cols: cols}, nil
}

func (p *parser) identList() ([]string, error) {
	var cols []string
	for {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
		if t := p.peek(); t.kind == tokOp && t.text == "," {
			p.next()
			continue
		}
		return cols, nil
	}
}

// agg fn(col) as name [, fn(col) as name]...
func (p *parser) parseAgg() (statement, error) {
	var items []aggItem
	for {
		item, err := p.parseAggItem()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		if t := p.peek(); t.kind == tokOp && t.text == "," {
			p.next()
			continue
		}
		return aggStmt{items: items}, nil
	}
}

func (p *parser) parseAggItem() (*aggItem, error) {
	fn, err := p.ident()
	if err != nil {
		return nil, err
	}
	if !aggFuncs[fn] {
		return nil, fmt.Errorf("unknown aggregate function %q", fn)
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var col string
	if t := p.peek(); t.kind == tokOp && t.text == "*" {
		if fn != "count" {
			return nil, fmt.Errorf("%s(*) is not allowed, only count(*)", fn)
		}
		p.next()
		col = "*"
	} else {
		col, err = p.ident()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	name := fn
	if col != "*" {
		name = fn + "_" + col
	}
	if t := p.peek(); t.kind == tokIdent && t.text == "as" {
		p.next()
		name, err = p.ident()
		if err != nil {
			return nil, err
		}
	}
	return &aggItem{fn: fn, col: col, name: name}, nil
}

// sort col [asc|desc]
func (p *parser) parseSort() (statement, error) {
	col, err := p.ident()
	if err != nil {
		return nil, err
	}
	desc := false
	if t := p.peek(); t.kind == tokIdent {
		switch t.text {
		case "asc":
			p.next()
		case "desc":
			p.next()
			desc = true
		default:
			return nil, fmt.Errorf("expected asc or desc, got %q", t.text)
		}
	}
	return sortStmt{col: col, desc: desc}, nil
}

// head n
func (p *parser) parseHead() (statement, error) {
	t := p.next()
	if t.kind != tokNumber {
		return nil, fmt.Errorf("head needs a row count, got %q", t.text)
	}
	n := int(t.num)
	if float64(n) != t.num || n < 0 {
		return nil, fmt.Errorf("head needs a non-negative integer, got %s", t.text)
	}
	return headStmt{n: n}, nil
}

// print arg [, arg]... where arg is a string, a number, or fn(col).
// Commas between arguments are optional.
func (p *parser) parsePrint() (statement, error) {
	var args []printArg
	for {
		t := p.peek()
		if t.kind == tokEOF {
			break
		}
		if t.kind == tokOp && t.text == "," && len(args) > 0 {
			p.next()
			continue
		}
		switch t.kind {
		case tokString:
			p.next()
			args = append(args, printArg{isStr: true, str: t.text})
		case tokNumber:
			p.next()
			args = append(args, printArg{isNum: true, num: t.num})
		case tokIdent:
			item, err := p.parseAggItem()
			if err != nil {
				return nil, err
			}
			args = append(args, printArg{agg: item})
		default:
			return nil, fmt.Errorf("print cannot take %q", t.text)
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("print needs at least one argument")
	}
	return printStmt{args: args}, nil
}

// plot kind key=value...
func (p *parser) parsePlot() (statement, error) {
	kind, err := p.ident()
	if err != nil {
		return nil, err
	}
	if !plotKinds[kind] {
		return nil, fmt.Errorf("unknown plot kind %q", kind)
	}
	args := map[string]plotArg{}
	for p.peek().kind != tokEOF {
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		switch key {
		case "x", "y", "bins", "title", "xlabel", "ylabel":
		default:
			return nil, fmt.Errorf("unknown plot option %q", key)
		}
		if _, dup := args[key]; dup {
			return nil, fmt.Errorf("duplicate plot option %q", key)
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		t := p.next()
		switch {
		case t.kind == tokIdent || t.kind == tokString:
			args[key] = plotArg{isStr: true, str: t.text}
		case t.kind == tokNumber:
			args[key] = plotArg{num: t.num}
		default:
			return nil, fmt.Errorf("bad value for plot option %q", key)
		}
	}
	if _, ok := args["x"]; !ok {
		return nil, fmt.Errorf("plot %s needs x=<column>", kind)
	}
	if b, ok := args["bins"]; ok {
		if b.isStr || b.num != math.Trunc(b.num) || b.num < 1 {
			return nil, fmt.Errorf("bins must be a positive integer")
		}
	}
	return plotStmt{kind: kind, args: args}, nil
}
