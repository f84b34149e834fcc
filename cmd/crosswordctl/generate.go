package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bodul/crossword/internal/xword"
)

// defaultSize reads the ambient DEFAULT_SIZE config value, falling back
// to 11 when unset or unparseable.
func defaultSize() int {
	if s := os.Getenv("DEFAULT_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 11
}

// NewGenerateCommand builds "crosswordctl generate".
func NewGenerateCommand(opts *RootOptions) *cobra.Command {
	var size int
	var wordsFile string
	var async bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a new puzzle from a candidate word list",
		Long: `Synthesize a new puzzle from a candidate word list.

--words-file must point to a JSON file shaped like:
  [{"answer": "ネコ", "clue": "..."}, ...]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(wordsFile)
			if err != nil {
				return fmt.Errorf("read words file: %w", err)
			}
			var candidates []xword.Candidate
			if err := json.Unmarshal(data, &candidates); err != nil {
				return fmt.Errorf("parse words file: %w", err)
			}

			req := map[string]interface{}{"size": size, "candidate_words": candidates}

			if async {
				var resp struct {
					JobID string `json:"job_id"`
				}
				if err := doJSON(opts, "POST", "/api/puzzles/jobs", req, &resp); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "job started: %s\n", resp.JobID)
				return nil
			}

			var rec xword.Record
			if err := doJSON(opts, "POST", "/api/puzzles", req, &rec); err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(rec)
		},
	}

	cmd.Flags().IntVar(&size, "size", defaultSize(), "grid side length")
	cmd.Flags().StringVar(&wordsFile, "words-file", "", "path to a JSON candidate word list")
	cmd.Flags().BoolVar(&async, "async", false, "dispatch asynchronously and print a job id instead of waiting")
	cmd.MarkFlagRequired("words-file")

	return cmd
}
