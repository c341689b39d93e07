package cmd

import (
	"fmt"

	"github.com/DataBuoy/databuoy-cli/internal/session"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List or replay saved chat transcripts",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved transcripts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		ids, err := session.List(cfg.SessionsDir)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No saved sessions")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		s, err := session.Load(cfg.SessionsDir, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Session %s  model=%s provider=%s dataset=%s\n\n", s.ID, s.Model, s.Provider, s.Dataset)
		for _, t := range s.Turns {
			fmt.Printf("[%s] %s\n", t.Role, t.Content)
			if t.Output != nil {
				fmt.Println(*t.Output)
			}
			if t.Error != nil {
				fmt.Printf("⚠ %s\n", *t.Error)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
}
