package liftoff

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/output"
	"github.com/shipctl/scaffold/internal/toolchain"
)

// defaultCommitMessage is used when --message is not supplied.
const defaultCommitMessage = "Update mission documentation"

// NewPushCmd creates the liftoff push command.
func NewPushCmd() *cobra.Command {
	var messageFlag string

	c := &cobra.Command{
		Use:   "push",
		Short: "Stage, commit, and push project changes",
		Long: `Stage every change in the project, commit it, and push to the current
branch's upstream.

Examples:
  liftoff push -m "Describe the mission"`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runPush(c.Context(), messageFlag)
		},
	}

	c.Flags().StringVarP(&messageFlag, "message", "m", defaultCommitMessage, "commit message")

	return c
}

func runPush(ctx context.Context, message string) error {
	tools := toolchain.New(".", "")

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"stage changes", tools.GitAddAll},
		{"commit", func(ctx context.Context) error { return tools.GitCommit(ctx, message) }},
		{"push", tools.GitPush},
	}

	for _, step := range steps {
		output.Debug("vcs step", "step", step.name)
		if err := step.run(ctx); err != nil {
			return &serrors.ExitError{
				Code: serrors.ExitExternalToolError,
				Err:  fmt.Errorf("%s: %w", step.name, err),
			}
		}
	}

	output.Println(output.FormatCheckmark("Changes pushed"))
	return nil
}
