package root

import (
	"github.com/spf13/cobra"
)

// NewRoot returns the top-level "todo" command. Subcommands are attached by main.
func NewRoot() *cobra.Command {
	return &cobra.Command{
		Use:           "todo",
		Short:         "Todo API CLI",
		Long:          "Command line interface for the todo API. Set TODO_API_URL to point at a non-default server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
