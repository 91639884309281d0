package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/shipctl/scaffold/internal/config"
	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/inventory"
	"github.com/shipctl/scaffold/internal/output"
	"github.com/shipctl/scaffold/internal/pipeline"
	"github.com/shipctl/scaffold/internal/registry"
	"github.com/shipctl/scaffold/internal/toolchain"
)

const launchBanner = `🚀 SHIP IGNITION 🚀
===================
Initiating Launch Sequence...`

// NewLaunchCmd creates the launch command.
func NewLaunchCmd(configFlag, dirFlag *string) *cobra.Command {
	c := &cobra.Command{
		Use:   "launch [project_name]",
		Short: "Generate a full project skeleton",
		Long: `Generate a complete project skeleton bound to a single project name:
isolated environment, dependency install, framework structure, BDD test
harness, service layer, static assets, version control, migrations, and a
default admin account.

If project_name is omitted, launch prompts for it (and for the mission goal).

Examples:
  # Launch with an explicit name
  scaffold launch blog

  # Launch interactively
  scaffold launch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLaunch(c, args, *configFlag, *dirFlag)
		},
	}

	return c
}

// runLaunch collects input, resolves it, and drives the pipeline. All
// prompting happens here; the pipeline receives resolved values only.
func runLaunch(c *cobra.Command, args []string, configFile, dir string) error {
	cfg, err := config.NewLoader().Load(configFile)
	if err != nil {
		return serrors.NewExitError(err, serrors.ExitGeneralError)
	}

	var rawName, goal string
	if len(args) == 1 {
		rawName = args[0]
	} else {
		output.Println(output.StyleAction.Render(launchBanner))
		in := output.NewInput(c.InOrStdin())
		rawName = in.Ask("What would you like to name your project? ", "myproject")
		goal = in.Ask("What is the goal of your app? ", "")
	}

	id, err := identity.Resolve(rawName)
	if err != nil {
		return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
	}

	reg, err := registry.New()
	if err != nil {
		return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
	}

	snapshot := &inventory.Snapshot{}
	tools := toolchain.New(dir, cfg.Python)
	opts := pipeline.Options{
		Root:     dir,
		ID:       id,
		Vars:     registry.ResolveVariables(id, goal),
		Registry: reg,
		Tools:    tools,
		Admin:    cfg.Admin,
		Snapshot: snapshot,
	}

	output.Info("launching project", "name", id.String(), "dir", dir)

	orch := pipeline.NewOrchestrator(pipeline.BuildStages(opts), logSink{})
	report := orch.Run(c.Context())

	for _, w := range report.Warnings {
		output.Warn(w)
	}

	if report.State == pipeline.StateAborted {
		detail := &serrors.DetailError{
			Type:    "launch aborted",
			Message: fmt.Sprintf("%s failed: %v", report.AbortedOperation, report.Err),
			Stage:   report.AbortedStage,
			Hint:    "Partially created artifacts were left in place. Run 'scaffold destroy' before retrying launch.",
			Cause:   report.Err,
		}
		output.Error("launch aborted", "stage", report.AbortedStage, "operation", report.AbortedOperation)
		return &serrors.ExitError{
			Code: serrors.ExitCodeFromError(report.Err),
			Err:  detail,
		}
	}

	pythonVersion, err := tools.PythonVersion(c.Context())
	if err != nil {
		output.Debug("interpreter version unavailable", "error", err)
		pythonVersion = ""
	}

	printLaunchSummary(c.OutOrStdout(), id, cfg, snapshot, pythonVersion)
	return nil
}

// logSink renders pipeline progress through the logging layer.
type logSink struct{}

func (logSink) StageStarted(stage string) {
	output.Info(output.StyleAction.Render(stage))
}

func (logSink) OperationFinished(stage, op string, err error, warned bool) {
	switch {
	case err == nil:
		output.Debug("operation complete", "stage", stage, "operation", op)
	case warned:
		output.Warn("operation failed (continuing)", "stage", stage, "operation", op, "error", err)
	default:
		output.Error("operation failed", "stage", stage, "operation", op, "error", err)
	}
}

// printLaunchSummary reports what was created and how to use it.
func printLaunchSummary(w io.Writer, id identity.Identifier, cfg *config.Config, snapshot *inventory.Snapshot, pythonVersion string) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, output.FormatCheckmark(output.StyleSummary.Render("Launch successful: "+id.String())))
	if pythonVersion != "" {
		fmt.Fprintln(w, "Virtual environment is ready with "+pythonVersion)
	}
	fmt.Fprintln(w, "")

	entries := make([]output.FileEntry, 0, snapshot.Len())
	for _, e := range snapshot.Entries() {
		path := e.Path
		if e.Dir {
			path += "/"
		}
		entries = append(entries, output.FileEntry{Path: "  " + path})
	}
	fmt.Fprint(w, output.RenderFileList(entries, 40))

	activate := "source " + toolchain.VenvDir + "/bin/activate"
	if runtime.GOOS == "windows" {
		activate = toolchain.VenvDir + "\\Scripts\\activate"
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "To activate the virtual environment:")
	fmt.Fprintln(w, "    "+activate)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "After activation, you can:")
	fmt.Fprintln(w, "  1. RUN:  python manage.py runserver")
	fmt.Fprintln(w, "  2. TEST: python manage.py behave")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Admin credentials:")
	fmt.Fprintln(w, "  Username: "+cfg.Admin.Username)
	if cfg.Admin.Generated {
		fmt.Fprintln(w, "  Password: "+cfg.Admin.Password+" (generated, note it down)")
	} else {
		fmt.Fprintln(w, "  Password: (from configuration)")
	}
}
