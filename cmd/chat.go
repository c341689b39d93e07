package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/DataBuoy/databuoy-cli/internal/session"
	"github.com/spf13/cobra"
)

var chatSave bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop over the dataset",
	Long: `Starts a read-eval loop. Each question is answered independently with
one model call; a failed turn prints its error and the loop continues.

Commands inside the loop:
  :examples  print example questions
  :summary   print the dataset overview
  :save      save the transcript now
  :quit      exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAssistant()
		if err != nil {
			return err
		}
		sess := session.New(cfg.SessionsDir, cfg.DefaultProvider, cfg.DefaultModel, cfg.DatasetPath)

		sum := a.Summary()
		fmt.Printf("Loaded %d passengers, %d columns. Ask away (:quit to exit).\n", sum.Rows, sum.Cols)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case ":quit", ":q", ":exit":
				return finishChat(sess)
			case ":examples":
				printExamples()
				continue
			case ":summary":
				printSummary(a)
				continue
			case ":save":
				if err := sess.Save(); err != nil {
					fmt.Printf("⚠ Save failed: %v\n", err)
				} else {
					fmt.Printf("✓ Saved transcript to %s\n", sess.Path())
				}
				continue
			}

			res := a.HandleQuery(cmd.Context(), line)
			printResult(res)

			sess.Append(session.Turn{Role: "user", Content: line})
			var fig json.RawMessage
			if res.Figure != nil {
				fig, _ = json.Marshal(res.Figure)
			}
			sess.Append(session.Turn{
				Role:    "assistant",
				Content: res.Answer,
				Output:  res.Output,
				Figure:  fig,
				Error:   res.Error,
				Code:    res.Code,
			})
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		return finishChat(sess)
	},
}

func finishChat(sess *session.Session) error {
	if !chatSave || len(sess.Turns) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	fmt.Printf("✓ Saved transcript to %s\n", sess.Path())
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&chatSave, "save", false, "save the transcript on exit")
}
