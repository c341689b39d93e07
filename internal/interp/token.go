package interp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokString
	tokOp
	tokEOF
)

type token struct {
	kind tokKind
	text string
	num  float64
	pos  int
}

// twoCharOps are matched before single-character operators.
var twoCharOps = []string{"==", "!=", ">=", "<="}

// lexLine tokenizes one statement line. Comments have already been stripped.
func lexLine(line string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(line) {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case ch == '"' || ch == '\'':
			quote := ch
			j := i + 1
			var sb strings.Builder
			closed := false
			for j < len(line) {
				if line[j] == '\\' && j+1 < len(line) {
					sb.WriteByte(line[j+1])
					j += 2
					continue
				}
				if line[j] == quote {
					closed = true
					break
				}
				sb.WriteByte(line[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string at column %d", i+1)
			}
			toks = append(toks, token{kind: tokString, text: sb.String(), pos: i})
			i = j + 1
		case ch >= '0' && ch <= '9' || (ch == '-' && i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' && startsValue(toks)):
			j := i + 1
			for j < len(line) && (line[j] >= '0' && line[j] <= '9' || line[j] == '.' || line[j] == 'e' || line[j] == 'E' ||
				((line[j] == '+' || line[j] == '-') && (line[j-1] == 'e' || line[j-1] == 'E'))) {
				j++
			}
			v, err := strconv.ParseFloat(line[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at column %d", line[i:j], i+1)
			}
			toks = append(toks, token{kind: tokNumber, text: line[i:j], num: v, pos: i})
			i = j
		case isIdentStart(rune(ch)):
			j := i + 1
			for j < len(line) && isIdentPart(rune(line[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: line[i:j], pos: i})
			i = j
		default:
			matched := false
			for _, op := range twoCharOps {
				if strings.HasPrefix(line[i:], op) {
					toks = append(toks, token{kind: tokOp, text: op, pos: i})
					i += len(op)
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			switch ch {
			case '>', '<', '=', '(', ')', ',', '*':
				toks = append(toks, token{kind: tokOp, text: string(ch), pos: i})
				i++
			default:
				return nil, fmt.Errorf("unexpected character %q at column %d", string(ch), i+1)
			}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(line)})
	return toks, nil
}

// startsValue reports whether a '-' at the current position begins a negative
// number rather than following one (as in "a - b", which the language does
// not have anyway).
func startsValue(toks []token) bool {
	if len(toks) == 0 {
		return true
	}
	last := toks[len(toks)-1]
	return last.kind == tokOp
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentPart(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// stripComment removes a trailing '#' comment, respecting quoted strings.
func stripComment(line string) string {
	inQuote := byte(0)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inQuote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == inQuote {
				inQuote = 0
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			inQuote = ch
			continue
		}
		if ch == '#' {
			return line[:i]
		}
	}
	return line
}
