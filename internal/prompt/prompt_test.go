package prompt_test

import (
	"strings"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/prompt"
)

func TestNeedsVisualization(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"Plot survival by class", true},
		{"plot survival by class", true},
		{"Show me the age DISTRIBUTION", true},
		{"Draw a chart of fares", true},
		{"Can you graph embarkation counts?", true},
		{"scatter of Age vs Fare", true},
		{"What is the survival rate?", false},
		{"Average age of passengers", false},
		{"How many passengers were in first class?", false},
	}
	for _, c := range cases {
		if got := prompt.NeedsVisualization(c.query); got != c.want {
			t.Errorf("NeedsVisualization(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestBuildBranches(t *testing.T) {
	info := "TITANIC DATASET INFORMATION:\nShape: 3 rows"

	viz := prompt.Build("Plot survival by class", true, info)
	if !strings.Contains(viz, "VISUALIZATION REQUEST") {
		t.Errorf("viz prompt missing visualization branch")
	}
	if strings.Contains(viz, "ANALYSIS REQUEST") {
		t.Errorf("viz prompt should not contain analysis branch")
	}

	ana := prompt.Build("What is the survival rate?", false, info)
	if !strings.Contains(ana, "ANALYSIS REQUEST") {
		t.Errorf("analysis prompt missing analysis branch")
	}

	for _, p := range []string{viz, ana} {
		if !strings.Contains(p, info) {
			t.Errorf("prompt missing dataset info")
		}
		if !strings.Contains(p, "CRITICAL RULES") {
			t.Errorf("prompt missing rules")
		}
		if !strings.Contains(p, "```"+prompt.CodeFence) {
			t.Errorf("prompt missing fence format instruction")
		}
	}
}

func TestBuildIsPure(t *testing.T) {
	a := prompt.Build("q", true, "info")
	b := prompt.Build("q", true, "info")
	if a != b {
		t.Fatalf("Build is not deterministic")
	}
}
