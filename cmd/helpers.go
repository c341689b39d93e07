package cmd

import (
	"fmt"
	"log/slog"

	"github.com/DataBuoy/databuoy-cli/internal/assistant"
	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/DataBuoy/databuoy-cli/internal/dataset"
)

// exampleQueries are shown by 'ask --examples' and the chat :examples command.
var exampleQueries = []string{
	"What was the survival rate for each passenger class?",
	"Show me a bar chart of survivors by gender",
	"What was the average age of survivors vs non-survivors?",
	"Plot the age distribution of passengers",
	"How many passengers embarked from each port?",
	"What was the median fare in first class?",
}

// loadAssistant loads and prepares the dataset, builds the model runtime,
// and wires both into an assistant. Any failure here is fatal to the
// command: a missing file, a broken schema, or a missing credential means
// there is nothing to run queries against.
func loadAssistant() (*assistant.Assistant, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	frame, err := loadPreparedFrame()
	if err != nil {
		return nil, err
	}
	rt, err := buildRuntime()
	if err != nil {
		return nil, err
	}
	log := logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("dataset loaded", "path", cfg.DatasetPath, "rows", frame.NumRows(), "columns", frame.NumCols())
	return assistant.New(frame, rt, assistant.Options{
		Model:       cfg.DefaultModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Logger:      log,
	}), nil
}

// loadPreparedFrame loads the configured dataset and applies the standard
// cleaning pass.
func loadPreparedFrame() (*dataset.Frame, error) {
	frame, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", cfg.DatasetPath, err)
	}
	if err := dataset.Prepare(frame); err != nil {
		return nil, fmt.Errorf("prepare dataset: %w", err)
	}
	return frame, nil
}

// printResult renders one query result to stdout.
func printResult(res assistant.Result) {
	fmt.Println(res.Answer)
	if res.Output != nil {
		fmt.Println()
		fmt.Println(*res.Output)
	}
	if res.Figure != nil {
		fmt.Println()
		fmt.Println(chart.Render(res.Figure))
	}
	if res.Error != nil {
		fmt.Printf("\n⚠ %s\n", *res.Error)
	}
	if debug && res.Code != "" {
		fmt.Printf("\n--- program ---\n%s\n---------------\n", res.Code)
	}
}

func printExamples() {
	fmt.Println("Example questions:")
	for _, q := range exampleQueries {
		fmt.Printf("  • %s\n", q)
	}
}
