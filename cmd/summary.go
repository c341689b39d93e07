package cmd

import (
	"fmt"
	"sort"

	"github.com/DataBuoy/databuoy-cli/internal/assistant"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print an overview of the loaded dataset without calling a model",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAssistantOffline()
		if err != nil {
			return err
		}
		printSummary(a)
		return nil
	},
}

// loadAssistantOffline prepares the dataset without building a model
// runtime, so summary works with no credential configured.
func loadAssistantOffline() (*assistant.Assistant, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	frame, err := loadPreparedFrame()
	if err != nil {
		return nil, err
	}
	return assistant.New(frame, nil, assistant.Options{Model: cfg.DefaultModel, Logger: logger}), nil
}

func printSummary(a *assistant.Assistant) {
	s := a.Summary()
	fmt.Printf("Rows: %d  Columns: %d\n", s.Rows, s.Cols)
	fmt.Printf("Survival rate: %.1f%%\n\n", s.SurvivalRate*100)

	fmt.Println("Passengers by class:")
	classes := make([]int64, 0, len(s.ClassCounts))
	for c := range s.ClassCounts {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, c := range classes {
		fmt.Printf("  class %d: %d\n", c, s.ClassCounts[c])
	}

	fmt.Println("Passengers by gender:")
	genders := make([]string, 0, len(s.GenderCounts))
	for g := range s.GenderCounts {
		genders = append(genders, g)
	}
	sort.Strings(genders)
	for _, g := range genders {
		fmt.Printf("  %s: %d\n", g, s.GenderCounts[g])
	}

	fmt.Println("\nColumns:")
	for _, name := range s.Columns {
		fmt.Printf("  %-18s %-8s missing=%d\n", name, s.Dtypes[name], s.MissingCounts[name])
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
