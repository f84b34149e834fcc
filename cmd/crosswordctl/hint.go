package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bodul/crossword/internal/xword"
)

// NewHintCommand builds "crosswordctl hint <id>".
func NewHintCommand(opts *RootOptions) *cobra.Command {
	var number int
	var orientation string

	cmd := &cobra.Command{
		Use:   "hint <id>",
		Short: "Reveal the first letter of one clue's answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/puzzles/%s/hint?number=%d&orientation=%s", args[0], number, orientation)
			var result xword.HintResult
			if err := doJSON(opts, "GET", path, nil, &result); err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "clue number")
	cmd.Flags().StringVar(&orientation, "orientation", "across", "\"across\" or \"down\"")
	cmd.MarkFlagRequired("number")

	return cmd
}
