package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipctl/scaffold/internal/config"
	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/inventory"
	"github.com/shipctl/scaffold/internal/registry"
)

// fakeRunner simulates the external toolchain, creating the filesystem
// residue each real tool would leave behind.
type fakeRunner struct {
	root string

	failCreateVenv bool
	failPip        map[string]bool
	failStartProj  bool
	failGitInit    bool
	failMigrate    bool
	failSuperuser  bool

	calls     []string
	installed []string
	superuser [3]string
}

func (f *fakeRunner) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeRunner) mkdir(t string) error { return os.MkdirAll(filepath.Join(f.root, t), 0o755) }

func (f *fakeRunner) touch(t string) error {
	return os.WriteFile(filepath.Join(f.root, t), []byte("generated\n"), 0o644)
}

func (f *fakeRunner) CreateVenv(context.Context) error {
	f.record("venv")
	if f.failCreateVenv {
		return errors.New("python not found")
	}
	return f.mkdir("venv")
}

func (f *fakeRunner) PipInstall(_ context.Context, pkg string) error {
	f.record("pip " + pkg)
	if f.failPip[pkg] {
		return errors.New("pip failed")
	}
	f.installed = append(f.installed, pkg)
	return nil
}

func (f *fakeRunner) StartProject(context.Context) error {
	f.record("startproject")
	if f.failStartProj {
		return errors.New("django-admin failed")
	}
	if err := f.mkdir("config"); err != nil {
		return err
	}
	return f.touch("manage.py")
}

func (f *fakeRunner) StartApp(_ context.Context, app string) error {
	f.record("startapp " + app)
	return f.mkdir(app)
}

func (f *fakeRunner) GitInit(context.Context) error {
	f.record("git init")
	if f.failGitInit {
		return errors.New("git not installed")
	}
	return f.mkdir(".git")
}

func (f *fakeRunner) Migrate(context.Context) error {
	f.record("migrate")
	if f.failMigrate {
		return errors.New("migrate failed")
	}
	return f.touch("db.sqlite3")
}

func (f *fakeRunner) CreateSuperuser(_ context.Context, username, password, email string) error {
	f.record("createsuperuser")
	if f.failSuperuser {
		return errors.New("createsuperuser failed")
	}
	f.superuser = [3]string{username, password, email}
	return nil
}

func launchOptions(t *testing.T, root string, runner *fakeRunner) Options {
	t.Helper()

	id, err := identity.Resolve("blog")
	require.NoError(t, err)
	reg, err := registry.New()
	require.NoError(t, err)

	return Options{
		Root:     root,
		ID:       id,
		Vars:     registry.ResolveVariables(id, "Track reading lists"),
		Registry: reg,
		Tools:    runner,
		Admin: config.AdminCredentials{
			Username: "admin",
			Password: "sekrit",
			Email:    "admin@example.com",
		},
		Snapshot: &inventory.Snapshot{},
	}
}

func TestBuildStages_FullRun(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateComplete, report.State)
	assert.Empty(t, report.Warnings)

	// External tool ordering: venv before pip, skeleton before migrate.
	assert.Equal(t, "venv", runner.calls[0])
	assert.Equal(t, "pip django>=4.2.0", runner.calls[1])
	assert.Equal(t, "migrate", runner.calls[len(runner.calls)-2])
	assert.Equal(t, "createsuperuser", runner.calls[len(runner.calls)-1])
	assert.Equal(t, [3]string{"admin", "sekrit", "admin@example.com"}, runner.superuser)

	// The requirements record mirrors the fixed list.
	record, err := os.ReadFile(filepath.Join(root, RequirementsFile))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Requirements(), "\n")+"\n", string(record))

	// The registry artifacts are on disk, plus the project-local manifest.
	for _, rel := range []string{"setup.py", "pytest.ini", "MISSION.md", "blog/urls.py", "config/settings.py", "blog/requirements.txt"} {
		_, err := os.Stat(filepath.Join(root, rel))
		require.NoError(t, err, "expected %s", rel)
	}

	// Every snapshot entry sits under a teardown candidate.
	candidates := make(map[string]bool)
	for _, c := range inventory.CandidatePaths(opts.ID) {
		candidates[c] = true
	}
	for _, e := range opts.Snapshot.Entries() {
		assert.True(t, candidates[inventory.TopLevel(e.Path)],
			"snapshot entry %s not covered by a teardown candidate", e.Path)
	}
}

func TestBuildStages_PrerequisiteInstallFailureAborts(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root, failPip: map[string]bool{"django>=4.2.0": true}}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateAborted, report.State)
	assert.Equal(t, StageDependency, report.AbortedStage)
	assert.Contains(t, report.Err.Error(), "prerequisite")

	// No package after the prerequisite was attempted.
	for _, call := range runner.calls {
		assert.NotContains(t, call, "python-dotenv")
	}

	// The record of attempted dependencies is still written.
	record, err := os.ReadFile(filepath.Join(root, RequirementsFile))
	require.NoError(t, err)
	assert.Contains(t, string(record), "django>=4.2.0")

	// Structure generation never ran.
	_, err = os.Stat(filepath.Join(root, "manage.py"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "setup.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildStages_MidListInstallFailureAborts(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root, failPip: map[string]bool{"behave>=1.2.6": true}}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateAborted, report.State)

	// Packages before the failure installed; the record still lists everything.
	assert.Contains(t, runner.installed, "selenium>=4.0.0")
	record, err := os.ReadFile(filepath.Join(root, RequirementsFile))
	require.NoError(t, err)
	assert.Contains(t, string(record), "coverage")
}

func TestBuildStages_GitFailureIsAWarning(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root, failGitInit: true}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateComplete, report.State)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "git")

	// Post-init still ran.
	assert.Contains(t, runner.calls, "migrate")
	assert.Contains(t, runner.calls, "createsuperuser")
}

func TestBuildStages_VenvFailureAbortsBeforeInstall(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root, failCreateVenv: true}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateAborted, report.State)
	assert.Equal(t, StageEnvironment, report.AbortedStage)
	assert.Equal(t, []string{"venv"}, runner.calls)

	// Nothing was installed, so no requirements record exists either.
	_, err := os.Stat(filepath.Join(root, RequirementsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildStages_MigrateFailureAborts(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root, failMigrate: true}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateAborted, report.State)
	assert.Equal(t, StagePostInit, report.AbortedStage)
	assert.NotContains(t, runner.calls, "createsuperuser")
}

// A completed launch followed by a confirmed teardown leaves the working
// directory exactly as it started.
func TestLaunchThenTeardown_RoundTrip(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateComplete, report.State)

	teardown := inventory.Teardown(root, opts.ID, inventory.ConfirmationToken)
	require.False(t, teardown.Canceled)
	require.False(t, teardown.Incomplete())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "teardown left residue: %v", entries)
}

func TestBuildStages_CopiesManifestIntoProject(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{root: root}
	opts := launchOptions(t, root, runner)

	report := NewOrchestrator(BuildStages(opts), nil).Run(context.Background())
	require.Equal(t, StateComplete, report.State)

	record, err := os.ReadFile(filepath.Join(root, RequirementsFile))
	require.NoError(t, err)
	inProject, err := os.ReadFile(filepath.Join(root, "blog", RequirementsFile))
	require.NoError(t, err)
	assert.Equal(t, record, inProject)

	// The copy is tracked so the summary lists it.
	var tracked bool
	for _, e := range opts.Snapshot.Entries() {
		if e.Path == "blog/requirements.txt" {
			tracked = true
		}
	}
	assert.True(t, tracked)
}

func TestRequirements_FrameworkFirst(t *testing.T) {
	reqs := Requirements()
	require.NotEmpty(t, reqs)
	assert.True(t, strings.HasPrefix(reqs[0], "django"))
}
