package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shipctl/scaffold/internal/config"
	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/inventory"
	"github.com/shipctl/scaffold/internal/registry"
	"github.com/shipctl/scaffold/internal/scaffold"
	"github.com/shipctl/scaffold/internal/toolchain"
)

// Stage names, in execution order.
const (
	StageEnvironment = "environment setup"
	StageDependency  = "dependency install"
	StageStructure   = "structure generation"
	StageVCS         = "vcs init"
	StagePostInit    = "post-init tasks"
)

// RequirementsFile is the dependency manifest record. It is written even
// when the install aborts, so it always reflects what was attempted.
const RequirementsFile = "requirements.txt"

// Requirements is the fixed ordered package list. The first entry is a hard
// prerequisite for the rest: without the framework, structure generation has
// nothing to run.
func Requirements() []string {
	return []string{
		"django>=4.2.0",
		"python-dotenv",
		"social-auth-app-django",
		"django-allauth",
		"selenium>=4.0.0",
		"behave>=1.2.6",
		"behave-django>=1.4.0",
		"pytest-django>=4.5.0",
		"webdriver-manager",
		"coverage",
		"pytest",
	}
}

// Runner is the external tool surface the stages need. *toolchain.Toolchain
// implements it; tests substitute a fake.
type Runner interface {
	CreateVenv(ctx context.Context) error
	PipInstall(ctx context.Context, pkg string) error
	StartProject(ctx context.Context) error
	StartApp(ctx context.Context, app string) error
	GitInit(ctx context.Context) error
	Migrate(ctx context.Context) error
	CreateSuperuser(ctx context.Context, username, password, email string) error
}

// Options carry the already-resolved inputs for a launch run. Stages never
// prompt; input collection happens before the pipeline starts.
type Options struct {
	// Root is the working directory the project is generated into.
	Root string

	// ID is the validated project identifier.
	ID identity.Identifier

	// Vars is the resolved variable set for template rendering.
	Vars registry.VariableSet

	// Registry is the validated artifact registry.
	Registry *registry.Registry

	// Tools invokes the external toolchain.
	Tools Runner

	// Admin holds the administrative account credentials.
	Admin config.AdminCredentials

	// Snapshot records every path the run creates.
	Snapshot *inventory.Snapshot
}

// BuildStages assembles the fixed launch stage list. Ordering is load-
// bearing: migrations require the generated structure, account creation
// requires migrations applied.
func BuildStages(opts Options) []Stage {
	return []Stage{
		{
			Name: StageEnvironment,
			Ops: []Operation{
				{
					Name:      "create virtual environment",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						if err := opts.Tools.CreateVenv(ctx); err != nil {
							return err
						}
						opts.Snapshot.Append(toolchain.VenvDir, true)
						return nil
					},
				},
			},
		},
		{
			Name: StageDependency,
			Ops: []Operation{
				{
					Name:      "install packages",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						return installDependencies(ctx, opts)
					},
				},
			},
		},
		{
			Name: StageStructure,
			Ops: []Operation{
				{
					Name:      "generate project skeleton",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						if err := opts.Tools.StartProject(ctx); err != nil {
							return err
						}
						opts.Snapshot.Append("config", true)
						opts.Snapshot.Append("manage.py", false)
						return nil
					},
				},
				{
					Name:      "generate application package",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						if err := opts.Tools.StartApp(ctx, opts.ID.String()); err != nil {
							return err
						}
						opts.Snapshot.Append(opts.ID.String(), true)
						return nil
					},
				},
				{
					Name:      "materialize artifacts",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						return materializeArtifacts(opts)
					},
				},
				{
					Name:      "copy dependency manifest",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						return copyRequirements(opts)
					},
				},
			},
		},
		{
			Name: StageVCS,
			Ops: []Operation{
				{
					Name:      "initialize version control",
					OnFailure: WarnContinue,
					Run: func(ctx context.Context) error {
						if err := opts.Tools.GitInit(ctx); err != nil {
							return err
						}
						opts.Snapshot.Append(".git", true)
						return nil
					},
				},
			},
		},
		{
			Name: StagePostInit,
			Ops: []Operation{
				{
					Name:      "apply migrations",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						if err := opts.Tools.Migrate(ctx); err != nil {
							return err
						}
						opts.Snapshot.Append("db.sqlite3", false)
						return nil
					},
				},
				{
					Name:      "create admin account",
					OnFailure: Abort,
					Run: func(ctx context.Context) error {
						return opts.Tools.CreateSuperuser(ctx,
							opts.Admin.Username, opts.Admin.Password, opts.Admin.Email)
					},
				},
			},
		},
	}
}

// installDependencies installs the fixed package list in order. The first
// package is a hard prerequisite; any failure aborts the stage. The
// requirements record is always written before returning so it preserves a
// true record of what was attempted.
func installDependencies(ctx context.Context, opts Options) (err error) {
	requirements := Requirements()

	defer func() {
		recordPath := filepath.Join(opts.Root, RequirementsFile)
		content := strings.Join(requirements, "\n") + "\n"
		if writeErr := os.WriteFile(recordPath, []byte(content), 0o644); writeErr != nil {
			if err == nil {
				err = fmt.Errorf("writing %s: %w", RequirementsFile, writeErr)
			}
			return
		}
		opts.Snapshot.Append(RequirementsFile, false)
	}()

	if prereqErr := opts.Tools.PipInstall(ctx, requirements[0]); prereqErr != nil {
		return fmt.Errorf("installing prerequisite %s: %w", requirements[0], prereqErr)
	}

	for _, pkg := range requirements[1:] {
		if pkgErr := opts.Tools.PipInstall(ctx, pkg); pkgErr != nil {
			return fmt.Errorf("installing %s: %w", pkg, pkgErr)
		}
	}

	return nil
}

// copyRequirements duplicates the dependency manifest into the application
// package, so the generated app carries its own install record. It lives
// inside the identifier directory, so teardown removes it with the directory.
func copyRequirements(opts Options) error {
	data, err := os.ReadFile(filepath.Join(opts.Root, RequirementsFile))
	if err != nil {
		return serrors.NewFilesystemError("reading dependency manifest", RequirementsFile, err)
	}

	rel := filepath.Join(opts.ID.String(), RequirementsFile)
	if err := os.WriteFile(filepath.Join(opts.Root, rel), data, 0o644); err != nil {
		return serrors.NewFilesystemError("copying dependency manifest", rel, err)
	}

	opts.Snapshot.Append(filepath.ToSlash(rel), false)
	return nil
}

// materializeArtifacts resolves and writes every registry artifact, recording
// each created path in the snapshot. It aborts on the first error; partial
// artifacts stay in place for teardown to clean up.
func materializeArtifacts(opts Options) error {
	mat := scaffold.New(opts.Root, opts.Vars)

	created, err := mat.MaterializeAll(opts.Registry.Specs())
	for _, art := range created {
		opts.Snapshot.Append(art.Path, art.Kind == registry.KindDirectory)
	}
	return err
}
