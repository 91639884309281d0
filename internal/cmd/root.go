// Package cmd provides command implementations for the scaffold CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shipctl/scaffold/internal/output"
	"github.com/shipctl/scaffold/internal/version"
)

// NewRootCmd creates the scaffold root command.
func NewRootCmd() *cobra.Command {
	var (
		flagVerbose bool
		flagConfig  string
		flagDir     string
	)

	rootCmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Project scaffold generator",
		Long: `scaffold bootstraps and tears down a mission-controlled project skeleton
from a single project name.

It provides commands to:
  - Launch a full project: virtual environment, dependencies, framework
    structure, BDD test harness, service layer, static assets, VCS init
  - Destroy a generated tree after explicit confirmation
  - Inspect the artifact manifest a launch would produce`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.SetupLogging(flagVerbose)

			info := version.GetInfo()
			output.Debug("scaffold CLI started", "version", info.Version)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (env: SCAFFOLD_*)")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", ".", "working directory to generate into")

	rootCmd.AddCommand(NewLaunchCmd(&flagConfig, &flagDir))
	rootCmd.AddCommand(NewDestroyCmd(&flagDir))
	rootCmd.AddCommand(NewManifestCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
