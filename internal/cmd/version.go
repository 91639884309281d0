package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shipctl/scaffold/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			info := version.GetInfo()
			fmt.Fprintf(c.OutOrStdout(), "scaffold %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}
