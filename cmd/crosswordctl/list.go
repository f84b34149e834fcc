package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/bodul/crossword/internal/xword"
)

// NewListCommand builds "crosswordctl list".
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []xword.Summary
			if err := doJSON(opts, "GET", "/api/puzzles", nil, &list); err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(list)
		},
	}
}
