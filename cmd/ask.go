package cmd

import (
	"fmt"
	"strings"

	"github.com/DataBuoy/databuoy-cli/internal/chart"
	"github.com/spf13/cobra"
)

var (
	askExamples bool
	askChartOut string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question about the dataset",
	Example: `  databuoy ask "What was the survival rate for each passenger class?"
  databuoy ask "Plot the age distribution" --chart-xlsx ages.xlsx
  databuoy ask --examples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if askExamples {
			printExamples()
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("a question is required (or use --examples)")
		}
		query := strings.Join(args, " ")

		a, err := loadAssistant()
		if err != nil {
			return err
		}
		res := a.HandleQuery(cmd.Context(), query)
		printResult(res)

		if askChartOut != "" {
			if res.Figure == nil {
				fmt.Printf("⚠ No chart was produced, %s not written\n", askChartOut)
				return nil
			}
			if err := chart.ExportXLSX(res.Figure, askChartOut); err != nil {
				return fmt.Errorf("export chart: %w", err)
			}
			fmt.Printf("✓ Wrote chart workbook to %s\n", askChartOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askExamples, "examples", false, "print example questions and exit")
	askCmd.Flags().StringVar(&askChartOut, "chart-xlsx", "", "write the produced chart to an .xlsx workbook")
}
