package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/bodul/crossword/internal/xword"
)

// NewGetCommand builds "crosswordctl get <id>".
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one puzzle by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec xword.Record
			if err := doJSON(opts, "GET", "/api/puzzles/"+args[0], nil, &rec); err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(rec)
		},
	}
}
