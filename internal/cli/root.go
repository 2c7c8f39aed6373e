// Package cli defines the cinema-scheduler command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command.  Without a subcommand it runs
// the HTTP server with default flags.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "cinema-scheduler",
		Short:         "Cinema show scheduling service",
		Long:          "Schedules movie shows into rooms, enforcing overlap, 3D, opening hours and premiere rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	// Mirror the serve flags so `cinema-scheduler --port 9000` works too.
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.AddCommand(serve)
	return cmd
}
