// Package registry is the single source of truth for every artifact the
// scaffold pipeline can create: each entry binds a logical key to a path
// template, a content template, and a kind.
package registry

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/identity"
)

//go:embed templates
var templateFS embed.FS

// Kind distinguishes file artifacts from directory artifacts.
type Kind string

const (
	// KindFile is a rendered file artifact.
	KindFile Kind = "file"

	// KindDirectory is a directory artifact with no content.
	KindDirectory Kind = "directory"
)

// VariableSet holds the resolved variables available to path and content
// templates for one run.
type VariableSet map[string]string

// DefaultGoal is the mission goal used when launch runs non-interactively.
const DefaultGoal = "[Describe the goal of your app]"

// ResolveVariables binds an identifier (and the optional mission goal) into
// the variable set used for every template in the registry.
func ResolveVariables(id identity.Identifier, goal string) VariableSet {
	if goal == "" {
		goal = DefaultGoal
	}
	return VariableSet{
		"Project": id.String(),
		"Goal":    goal,
	}
}

// ArtifactSpec is one registry entry.
type ArtifactSpec struct {
	// Key is the logical artifact identifier.
	Key string

	// PathTemplate is the relative output path; it may reference variables.
	PathTemplate string

	// TemplateFile is the embedded content template name (file kinds only).
	TemplateFile string

	// Kind is file or directory.
	Kind Kind

	// Description is a short human label for the launch summary.
	Description string
}

// ResolvePath renders the path template against vars. Unknown variables fail
// closed.
func (s ArtifactSpec) ResolvePath(vars VariableSet) (string, error) {
	return render(s.Key+"/path", s.PathTemplate, vars)
}

// Content loads and renders the content template against vars. Directory
// specs return nil content.
func (s ArtifactSpec) Content(vars VariableSet) ([]byte, error) {
	if s.Kind == KindDirectory {
		return nil, nil
	}
	raw, err := templateFS.ReadFile(path.Join("templates", s.TemplateFile))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", s.TemplateFile, err)
	}
	rendered, err := render(s.Key+"/content", string(raw), vars)
	if err != nil {
		return nil, err
	}
	return []byte(rendered), nil
}

// render executes a template with missingkey=error so that a reference to an
// unresolved variable surfaces as ErrMissingVariable instead of writing a
// partially substituted artifact.
func render(name, text string, vars VariableSet) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", fmt.Errorf("template %s: %w: %w", name, serrors.ErrMissingVariable, err)
		}
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Registry is the validated, ordered artifact list. Order is a materialization
// order: directories precede the files they contain, and base structures
// precede files that reference them.
type Registry struct {
	specs []ArtifactSpec
}

// New builds the default registry and runs its construction validation pass.
func New() (*Registry, error) {
	r := &Registry{specs: defaultSpecs()}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Specs returns the registry entries in materialization order.
func (r *Registry) Specs() []ArtifactSpec {
	out := make([]ArtifactSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Get returns the spec for a logical key.
func (r *Registry) Get(key string) (ArtifactSpec, bool) {
	for _, s := range r.specs {
		if s.Key == key {
			return s, true
		}
	}
	return ArtifactSpec{}, false
}

// defaultSpecs lists every artifact the structure-generation stage writes
// itself. Artifacts produced by external tools (the venv, manage.py, the
// config project skeleton, db.sqlite3, .git) are tracked by the inventory,
// not the registry.
func defaultSpecs() []ArtifactSpec {
	return []ArtifactSpec{
		{Key: "tests-dir", PathTemplate: "tests", Kind: KindDirectory, Description: "Test package"},
		{Key: "tests-init", PathTemplate: "tests/__init__.py", TemplateFile: "tests_init.py.tmpl", Kind: KindFile},
		{Key: "tests-conftest", PathTemplate: "tests/conftest.py", TemplateFile: "conftest.py.tmpl", Kind: KindFile, Description: "pytest fixtures"},
		{Key: "tests-views", PathTemplate: "tests/test_views.py", TemplateFile: "test_views.py.tmpl", Kind: KindFile, Description: "Smoke test"},
		{Key: "pytest-ini", PathTemplate: "pytest.ini", TemplateFile: "pytest.ini.tmpl", Kind: KindFile, Description: "pytest configuration"},
		{Key: "setup-py", PathTemplate: "setup.py", TemplateFile: "setup.py.tmpl", Kind: KindFile, Description: "Package descriptor"},

		{Key: "services-external-dir", PathTemplate: "{{.Project}}/services/external", Kind: KindDirectory, Description: "External service clients"},
		{Key: "services-init", PathTemplate: "{{.Project}}/services/__init__.py", TemplateFile: "services_init.py.tmpl", Kind: KindFile},
		{Key: "services-base", PathTemplate: "{{.Project}}/services/base.py", TemplateFile: "services_base.py.tmpl", Kind: KindFile, Description: "Service base class"},
		{Key: "services-exceptions", PathTemplate: "{{.Project}}/services/exceptions.py", TemplateFile: "services_exceptions.py.tmpl", Kind: KindFile, Description: "Service errors"},
		{Key: "services-external-init", PathTemplate: "{{.Project}}/services/external/__init__.py", TemplateFile: "external_init.py.tmpl", Kind: KindFile},

		{Key: "app-urls", PathTemplate: "{{.Project}}/urls.py", TemplateFile: "app_urls.py.tmpl", Kind: KindFile, Description: "App URLConf"},
		{Key: "project-urls", PathTemplate: "config/urls.py", TemplateFile: "project_urls.py.tmpl", Kind: KindFile, Description: "Project URLConf"},
		{Key: "project-settings", PathTemplate: "config/settings.py", TemplateFile: "settings.py.tmpl", Kind: KindFile, Description: "Project settings"},

		{Key: "features-steps-dir", PathTemplate: "features/steps", Kind: KindDirectory, Description: "BDD step definitions"},
		{Key: "features-init", PathTemplate: "features/__init__.py", TemplateFile: "features_init.py.tmpl", Kind: KindFile},
		{Key: "features-environment", PathTemplate: "features/environment.py", TemplateFile: "environment.py.tmpl", Kind: KindFile, Description: "behave test server setup"},
		{Key: "features-homepage", PathTemplate: "features/homepage.feature", TemplateFile: "homepage.feature.tmpl", Kind: KindFile, Description: "Homepage scenario"},
		{Key: "features-steps-init", PathTemplate: "features/steps/__init__.py", TemplateFile: "steps_init.py.tmpl", Kind: KindFile},
		{Key: "features-steps-homepage", PathTemplate: "features/steps/homepage_steps.py", TemplateFile: "homepage_steps.py.tmpl", Kind: KindFile, Description: "Homepage steps"},

		{Key: "templates-dir", PathTemplate: "{{.Project}}/templates/{{.Project}}", Kind: KindDirectory, Description: "HTML templates"},
		{Key: "base-template", PathTemplate: "{{.Project}}/templates/{{.Project}}/base.html", TemplateFile: "base.html.tmpl", Kind: KindFile, Description: "Base template"},
		{Key: "static-css-dir", PathTemplate: "{{.Project}}/static/{{.Project}}/css", Kind: KindDirectory},
		{Key: "static-js-dir", PathTemplate: "{{.Project}}/static/{{.Project}}/js", Kind: KindDirectory},
		{Key: "static-images-dir", PathTemplate: "{{.Project}}/static/{{.Project}}/images", Kind: KindDirectory, Description: "Image assets"},
		{Key: "static-css", PathTemplate: "{{.Project}}/static/{{.Project}}/css/style.css", TemplateFile: "style.css.tmpl", Kind: KindFile, Description: "Stylesheet"},
		{Key: "static-js", PathTemplate: "{{.Project}}/static/{{.Project}}/js/main.js", TemplateFile: "main.js.tmpl", Kind: KindFile, Description: "Script entry point"},

		{Key: "gitignore", PathTemplate: ".gitignore", TemplateFile: "gitignore.tmpl", Kind: KindFile, Description: "VCS ignore rules"},
		{Key: "behave-ini", PathTemplate: "behave.ini", TemplateFile: "behave.ini.tmpl", Kind: KindFile, Description: "behave configuration"},
		{Key: "mission", PathTemplate: "MISSION.md", TemplateFile: "mission.md.tmpl", Kind: KindFile, Description: "Mission statement"},
	}
}

// probeIdentifier is used by the construction validation pass. Any valid
// identifier works; collisions and missing variables do not depend on the
// concrete value.
const probeIdentifier = "probe_app"

// validate rejects configuration bugs at construction time: duplicate keys,
// duplicate resolved paths, unresolvable variables, missing template files,
// and paths escaping the working directory.
func (r *Registry) validate() error {
	probe, err := identity.Resolve(probeIdentifier)
	if err != nil {
		return serrors.Wrap(serrors.ErrRegistry, "probe identifier rejected")
	}
	vars := ResolveVariables(probe, "")

	seenKeys := make(map[string]bool, len(r.specs))
	seenPaths := make(map[string]string, len(r.specs))

	for _, s := range r.specs {
		if seenKeys[s.Key] {
			return serrors.Wrap(serrors.ErrRegistry, fmt.Sprintf("duplicate artifact key %q", s.Key))
		}
		seenKeys[s.Key] = true

		resolved, err := s.ResolvePath(vars)
		if err != nil {
			return serrors.Wrap(serrors.ErrRegistry, fmt.Sprintf("artifact %q: unresolvable path: %v", s.Key, err))
		}

		clean := path.Clean(resolved)
		if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			return serrors.Wrap(serrors.ErrRegistry, fmt.Sprintf("artifact %q: path %q escapes the working directory", s.Key, resolved))
		}

		if prev, dup := seenPaths[clean]; dup {
			return serrors.Wrap(serrors.ErrRegistry, fmt.Sprintf("artifacts %q and %q resolve to the same path %q", prev, s.Key, clean))
		}
		seenPaths[clean] = s.Key

		if s.Kind == KindFile {
			if _, err := s.Content(vars); err != nil {
				return serrors.Wrap(serrors.ErrRegistry, fmt.Sprintf("artifact %q: %v", s.Key, err))
			}
		}
	}

	return nil
}
