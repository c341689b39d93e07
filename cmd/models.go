package cmd

import (
	"fmt"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models with context windows and pricing",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-36s %10s %12s %12s\n", "MODEL", "CONTEXT", "IN $/1K", "OUT $/1K")
		for _, mi := range ai.Catalog() {
			fmt.Printf("%-36s %10d %12.4f %12.4f\n", mi.Name, mi.ContextTokens, mi.InputPerK, mi.OutputPerK)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
