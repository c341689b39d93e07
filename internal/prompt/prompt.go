// Package prompt builds the model-facing request text for a user query.
package prompt

import (
	"fmt"
	"strings"
)

// CodeFence is the language tag the model is told to use for its script
// block, and the tag the extractor looks for.
const CodeFence = "tabq"

// vizKeywords route a query to the visualization branch on any
// case-insensitive substring hit. This is a heuristic: "show me the survival
// rate" goes to the visualization branch even though a number would do.
var vizKeywords = []string{
	"plot", "graph", "chart", "show", "visualize", "distribution", "histogram", "scatter",
}

// NeedsVisualization classifies a query as a plot request.
func NeedsVisualization(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range vizKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

const languageReference = `QUERY LANGUAGE (tabq) REFERENCE:
Scripts are line-oriented; each line is one statement, executed top to bottom
against the passenger table. '#' starts a comment.

  filter <condition>        keep rows matching the condition, e.g.
                            filter Sex == "female" and Age > 30
                            operators: == != > >= < <=, combined with
                            and/or/not and parentheses
  select Col1, Col2         keep only the named columns
  group Col1[, Col2]        set grouping columns for the next agg
  agg fn(Col) as name[, …]  aggregate: count, sum, mean, median, min, max
  sort Col [asc|desc]       order rows by a column
  head N                    keep the first N rows
  print "text", mean(Age)   print literals and scalar aggregates, space-joined
  show                      print the current table
  plot kind x=Col [y=Col] [bins=N] [title="…"] [xlabel="…"] [ylabel="…"]
                            kind: bar, hist, scatter, line, pie`

const commonRules = `CRITICAL RULES:
1. The table already contains the real passengers listed above - DO NOT invent sample data
2. Use ORIGINAL column values: 'Sex' and 'Embarked' hold readable strings, not codes
3. For filtering use e.g.: filter Sex == "male"  or  filter Embarked == "S"
4. Always refer to columns by name exactly as listed - never by position
5. Age and Fare have already been filled; no missing-value handling is needed
6. Always add a title and axis labels to plots
7. Only the statements in the language reference are available - nothing else executes`

// Build renders the full prompt for a query. Pure function of its inputs.
func Build(query string, needsViz bool, datasetInfo string) string {
	var b strings.Builder
	b.WriteString(datasetInfo)
	b.WriteString("\n")
	b.WriteString(languageReference)
	b.WriteString("\n\n")
	b.WriteString(commonRules)
	b.WriteString("\n\n")

	if needsViz {
		b.WriteString(fmt.Sprintf("VISUALIZATION REQUEST: %q\n\n", query))
		b.WriteString(`Create a compelling visualization that answers this question. Your script should:
1. Filter or aggregate the table as needed
2. Choose an appropriate plot kind (bar, hist, scatter, line, pie)
3. Add a meaningful title and axis labels
4. Optionally print 1-2 key numbers for context
`)
	} else {
		b.WriteString(fmt.Sprintf("ANALYSIS REQUEST: %q\n\n", query))
		b.WriteString(`Perform statistical analysis to answer this question. Your script should:
1. Calculate relevant statistics, percentages, or comparisons
2. Print results clearly with context
3. Show actual numbers and percentages where relevant
`)
	}

	b.WriteString(fmt.Sprintf(`
Format: respond with exactly one fenced %s code block (`+"```%s ... ```"+`),
followed by a brief 2-3 sentence explanation of the findings.
`, CodeFence, CodeFence))
	return b.String()
}
