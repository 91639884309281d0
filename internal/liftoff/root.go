// Package liftoff implements the companion documentation entry point. It is
// pass-through glue around external collaborators (the AI assistant and git);
// it carries no internal state machine.
package liftoff

import (
	"github.com/spf13/cobra"

	"github.com/shipctl/scaffold/internal/output"
)

// NewRootCmd creates the liftoff root command.
func NewRootCmd() *cobra.Command {
	var flagDebug bool

	rootCmd := &cobra.Command{
		Use:   "liftoff",
		Short: "Project documentation assistant",
		Long: `liftoff drives the documentation sequence for a scaffolded project:
working with the AI assistant to fill out MISSION.md and pushing the result
to version control.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.SetupLogging(flagDebug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "increase output verbosity")

	rootCmd.AddCommand(NewLaunchCmd())
	rootCmd.AddCommand(NewPushCmd())

	return rootCmd
}
