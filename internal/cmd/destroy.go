package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/inventory"
	"github.com/shipctl/scaffold/internal/output"
)

// NewDestroyCmd creates the destroy command.
func NewDestroyCmd(dirFlag *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "destroy",
		Short: "Remove a generated project tree",
		Long: fmt.Sprintf(`Remove every path a launch can create for a project: the virtual
environment, dependency manifest, framework structure, test directories,
database file, and the project's own directory.

The candidate path set is fixed and derived purely from the project name;
destroy never performs a generic clean of the working directory. Paths that
are already absent are skipped, so re-running destroy is a no-op.

Destruction requires typing the confirmation phrase %q exactly. A mismatched
confirmation cancels with no filesystem changes and exit code 0.`, inventory.ConfirmationToken),
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runDestroy(c, *dirFlag)
		},
	}

	return c
}

// runDestroy prompts for the project name and confirmation phrase, then
// tears down the candidate path set.
func runDestroy(c *cobra.Command, dir string) error {
	in := output.NewInput(c.InOrStdin())
	rawName := in.Ask("Enter your project name to destroy: ", "")

	id, err := identity.Resolve(rawName)
	if err != nil {
		return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
	}

	confirmation := in.Ask(
		fmt.Sprintf("Type '%s' to confirm deletion of generated files: ", inventory.ConfirmationToken), "")

	if confirmation == inventory.ConfirmationToken {
		fmt.Fprintln(c.OutOrStdout(), output.StyleAction.Render("Initiating destruction sequence..."))
	}

	report := inventory.Teardown(dir, id, confirmation)
	return renderTeardownReport(c.OutOrStdout(), report)
}

// renderTeardownReport prints the teardown outcome and maps it to an exit
// code: cancellation and full success both exit 0, removal failures exit
// non-zero after every candidate has been attempted.
func renderTeardownReport(w io.Writer, report *inventory.Report) error {
	if report.Canceled {
		output.Info("destruction cancelled")
		return nil
	}

	for _, path := range report.Removed {
		fmt.Fprintln(w, output.FormatArtifactLine(path, output.StatusRemoved))
	}
	for _, path := range report.Skipped {
		output.Debug("already absent", "path", path)
	}
	for _, f := range report.Failures {
		output.Error("removal failed", "path", f.Path, "error", f.Err)
	}

	if report.Incomplete() {
		err := fmt.Errorf("%d path(s) could not be removed", len(report.Failures))
		return &serrors.ExitError{Code: serrors.ExitTeardownIncomplete, Err: err, Printed: true}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, output.FormatCheckmark("Destruction complete"))
	return nil
}
