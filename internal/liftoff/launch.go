package liftoff

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/output"
)

// MissionFile is the mission document the assistant fills out.
const MissionFile = "MISSION.md"

// assistantBin is the external AI coding assistant.
const assistantBin = "aider"

// NewLaunchCmd creates the liftoff launch command.
func NewLaunchCmd() *cobra.Command {
	var (
		dryRunFlag bool
		voiceFlag  bool
	)

	c := &cobra.Command{
		Use:   "launch",
		Short: "Work with the assistant to complete MISSION.md",
		Long: `Open the project's MISSION.md and drive the AI assistant to complete its
remaining sections.

Examples:
  # Fill out the mission document interactively
  liftoff launch

  # Show the assistant invocation without running it
  liftoff launch --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLaunch(c.Context(), dryRunFlag, voiceFlag)
		},
	}

	c.Flags().BoolVar(&dryRunFlag, "dry-run", false, "print the assistant command without running it")
	c.Flags().BoolVar(&voiceFlag, "voice", false, "enable the assistant's voice mode")

	return c
}

func runLaunch(ctx context.Context, dryRun, voice bool) error {
	if _, err := os.Stat(MissionFile); err != nil {
		return &serrors.ExitError{
			Code: serrors.ExitGeneralError,
			Err:  fmt.Errorf("%s not found; run 'scaffold launch' first", MissionFile),
		}
	}

	args := []string{MissionFile, "--message", "Fill out the remaining sections of MISSION.md"}
	if voice {
		args = append(args, "--voice")
	}

	if dryRun {
		output.Println(assistantBin + " " + strings.Join(args, " "))
		return nil
	}

	output.Info("starting documentation sequence", "file", MissionFile)

	cmd := exec.CommandContext(ctx, assistantBin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &serrors.ExitError{
			Code: serrors.ExitExternalToolError,
			Err:  fmt.Errorf("assistant failed: %w", err),
		}
	}

	output.Println(output.FormatCheckmark("Mission documentation complete"))
	return nil
}
