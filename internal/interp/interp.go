// Package interp runs scripts in a small line-oriented table language
// against an in-memory copy of the dataset. Scripts can filter, group,
// aggregate, print, and describe charts, and nothing else: there is no
// file, network, or process access to escape to.
package interp

import (
	"fmt"
	"strings"

	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

// Execute runs a script against a clone of base. The canonical table is
// never mutated.
//
// Execute never returns a Go error. Empty code, parse failures, and
// evaluation failures all come back as the errMsg string, which includes
// the failing line for anything past the empty-code case. output is nil
// when the script printed nothing, and figure is the chart spec of the
// most recent plot statement, nil when the script plotted nothing.
func Execute(code string, base *dataset.Frame) (output *string, figure *chart.Chart, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			figure = nil
			errMsg = fmt.Sprintf("Execution Error: internal fault: %v", r)
		}
	}()

	if strings.TrimSpace(code) == "" {
		return nil, nil, "No code to execute"
	}

	lines, badLine, err := parseScript(code)
	if err != nil {
		return nil, nil, formatError(err, badLine, code)
	}

	e := &executor{work: base.Clone()}
	for _, ln := range lines {
		if err := e.exec(ln.stmt); err != nil {
			return nil, nil, formatError(err, ln.num, code)
		}
	}

	if len(e.out) > 0 {
		joined := strings.Join(e.out, "\n")
		output = &joined
	}
	return output, e.fig, ""
}

// formatError renders a contained failure with the script lines and a
// marker on the one that failed.
func formatError(err error, lineNum int, code string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Execution Error: %s\n\nTrace:\n", err)
	for i, raw := range strings.Split(code, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		if i+1 == lineNum {
			fmt.Fprintf(&sb, "  %3d | %s   <- error\n", i+1, line)
		} else {
			fmt.Fprintf(&sb, "  %3d | %s\n", i+1, line)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
