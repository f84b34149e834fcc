package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bodul/crossword/internal/xword"
)

// NewCheckCommand builds "crosswordctl check <id>".
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	var answersFile string

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Grade a set of submitted answers against a puzzle",
		Long: `Grade a set of submitted answers against a puzzle.

--answers-file must point to a JSON object shaped like:
  {"1-across": "ネコ", "2-down": "イヌ"}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(answersFile)
			if err != nil {
				return fmt.Errorf("read answers file: %w", err)
			}
			var answers map[string]string
			if err := json.Unmarshal(data, &answers); err != nil {
				return fmt.Errorf("parse answers file: %w", err)
			}

			var result xword.CheckResult
			body := map[string]interface{}{"answers": answers}
			if err := doJSON(opts, "POST", "/api/puzzles/"+args[0]+"/check", body, &result); err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}

	cmd.Flags().StringVar(&answersFile, "answers-file", "", "path to a JSON object of clue-key -> answer")
	cmd.MarkFlagRequired("answers-file")

	return cmd
}
