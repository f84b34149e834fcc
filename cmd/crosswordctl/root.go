package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for every subcommand.
type RootOptions struct {
	ServerURL string
	Client    *http.Client
}

// NewRootCommand builds the crosswordctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Client: &http.Client{Timeout: 30 * time.Second}}

	cmd := &cobra.Command{
		Use:   "crosswordctl",
		Short: "Call a crossword server from the command line",
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "http://localhost:8080", "base URL of the crossword server")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHintCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}
