// Package toolchain wraps the external tools the pipeline orchestrates:
// the Python interpreter, pip, django-admin, manage.py, and git.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/output"
)

// VenvDir is the name of the isolated environment directory.
const VenvDir = "venv"

// ExternalProcessError records a non-zero exit from an invoked tool together
// with enough context for the operator to diagnose it.
type ExternalProcessError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface.
func (e *ExternalProcessError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// Unwrap marks the error as an external tool failure.
func (e *ExternalProcessError) Unwrap() error {
	return serrors.ErrExternalTool
}

// Toolchain invokes external tools inside a project root. Every call blocks
// until the tool exits; later pipeline operations depend on the state earlier
// ones leave behind.
type Toolchain struct {
	// Python is the host interpreter used to create the venv.
	Python string

	// Root is the working directory for every invocation.
	Root string

	// Stdout and Stderr receive tool output. If nil, the process streams
	// are used.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a toolchain rooted at root using the given host interpreter.
func New(root, python string) *Toolchain {
	if python == "" {
		python = "python3"
	}
	return &Toolchain{
		Python: python,
		Root:   root,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// venvBin returns the path of a tool inside the venv, relative to Root.
func (t *Toolchain) venvBin(name string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(VenvDir, "Scripts", name)
	}
	return filepath.Join(VenvDir, "bin", name)
}

// CreateVenv creates the isolated runtime environment.
func (t *Toolchain) CreateVenv(ctx context.Context) error {
	return t.run(ctx, nil, t.Python, "-m", "venv", VenvDir)
}

// PipInstall installs a single package into the venv. Installer output is
// captured rather than streamed so the spinner owns the terminal; on failure
// the captured output travels with the error.
func (t *Toolchain) PipInstall(ctx context.Context, pkg string) error {
	return output.RunWithSpinner(ctx, func() error {
		_, err := t.runCapture(ctx, t.venvBin("pip"), "install", pkg)
		return err
	}, output.WithTitle("Installing "+pkg+"..."))
}

// StartProject generates the framework project skeleton into the fixed
// config directory.
func (t *Toolchain) StartProject(ctx context.Context) error {
	return t.run(ctx, nil, t.venvBin("django-admin"), "startproject", "config", ".")
}

// StartApp generates the identifier-named application package.
func (t *Toolchain) StartApp(ctx context.Context, app string) error {
	return t.run(ctx, nil, t.venvBin("python"), "manage.py", "startapp", app)
}

// GitInit initializes version control in the project root.
func (t *Toolchain) GitInit(ctx context.Context) error {
	return t.run(ctx, nil, "git", "init")
}

// Migrate applies database schema migrations.
func (t *Toolchain) Migrate(ctx context.Context) error {
	return t.run(ctx, nil, t.venvBin("python"), "manage.py", "migrate")
}

// CreateSuperuser creates the default administrative account
// non-interactively. Credentials are passed through the environment, never
// on the command line.
func (t *Toolchain) CreateSuperuser(ctx context.Context, username, password, email string) error {
	env := append(os.Environ(),
		"DJANGO_SUPERUSER_USERNAME="+username,
		"DJANGO_SUPERUSER_PASSWORD="+password,
		"DJANGO_SUPERUSER_EMAIL="+email,
	)
	return t.run(ctx, env, t.venvBin("python"), "manage.py", "createsuperuser", "--noinput")
}

// PythonVersion reports the venv interpreter version for the launch summary.
func (t *Toolchain) PythonVersion(ctx context.Context) (string, error) {
	out, err := t.runCapture(ctx, t.venvBin("python"), "-V")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GitAddAll stages every change in the project root.
func (t *Toolchain) GitAddAll(ctx context.Context) error {
	return t.run(ctx, nil, "git", "add", "-A")
}

// GitCommit commits staged changes with the given message.
func (t *Toolchain) GitCommit(ctx context.Context, message string) error {
	return t.run(ctx, nil, "git", "commit", "-m", message)
}

// GitPush pushes the current branch to its upstream.
func (t *Toolchain) GitPush(ctx context.Context) error {
	return t.run(ctx, nil, "git", "push")
}

// run executes a tool, streaming stdout/stderr and keeping a stderr tail for
// error reporting.
func (t *Toolchain) run(ctx context.Context, env []string, name string, args ...string) error {
	output.Debug("running tool", "tool", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = t.Root
	if env != nil {
		cmd.Env = env
	}

	var stderrBuf bytes.Buffer
	stdout := t.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := t.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		return &ExternalProcessError{
			Tool:   name,
			Args:   args,
			Stderr: stderrBuf.String(),
			Err:    err,
		}
	}
	return nil
}

// runCapture executes a tool and returns its combined output.
func (t *Toolchain) runCapture(ctx context.Context, name string, args ...string) ([]byte, error) {
	output.Debug("running tool", "tool", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = t.Root

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &ExternalProcessError{
			Tool:   name,
			Args:   args,
			Stderr: string(out),
			Err:    err,
		}
	}
	return out, nil
}
