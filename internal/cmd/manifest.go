package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/inventory"
	"github.com/shipctl/scaffold/internal/registry"
)

// manifestDoc is the machine-readable inventory for one identifier: every
// artifact the registry materializes plus the fixed teardown candidate set.
type manifestDoc struct {
	Project   string             `json:"project" yaml:"project"`
	Artifacts []manifestArtifact `json:"artifacts" yaml:"artifacts"`
	Teardown  manifestTeardown   `json:"teardown" yaml:"teardown"`
}

type manifestArtifact struct {
	Key         string `json:"key" yaml:"key"`
	Path        string `json:"path" yaml:"path"`
	Kind        string `json:"kind" yaml:"kind"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type manifestTeardown struct {
	Confirmation string   `json:"confirmation" yaml:"confirmation"`
	Files        []string `json:"files" yaml:"files"`
	Directories  []string `json:"directories" yaml:"directories"`
}

// NewManifestCmd creates the manifest command.
func NewManifestCmd() *cobra.Command {
	var formatFlag string

	c := &cobra.Command{
		Use:   "manifest <project_name>",
		Short: "Print the artifact manifest for a project name",
		Long: `Print every path a launch would create for the given project name, plus
the fixed candidate set destroy would remove, without touching the
filesystem.

Examples:
  # Human-oriented YAML manifest
  scaffold manifest blog

  # JSON for tooling
  scaffold manifest blog --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runManifest(c, args[0], formatFlag)
		},
	}

	c.Flags().StringVarP(&formatFlag, "format", "f", "yaml", "output format (yaml, json)")

	return c
}

func runManifest(c *cobra.Command, rawName, format string) error {
	id, err := identity.Resolve(rawName)
	if err != nil {
		return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
	}

	reg, err := registry.New()
	if err != nil {
		return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
	}

	vars := registry.ResolveVariables(id, "")

	doc := manifestDoc{
		Project: id.String(),
		Teardown: manifestTeardown{
			Confirmation: inventory.ConfirmationToken,
			Files:        inventory.CandidateFiles(),
			Directories:  inventory.CandidateDirs(id),
		},
	}

	for _, spec := range reg.Specs() {
		path, err := spec.ResolvePath(vars)
		if err != nil {
			return &serrors.ExitError{Code: serrors.ExitValidationError, Err: err}
		}
		doc.Artifacts = append(doc.Artifacts, manifestArtifact{
			Key:         spec.Key,
			Path:        path,
			Kind:        string(spec.Kind),
			Description: spec.Description,
		})
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(c.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	case "json":
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return &serrors.ExitError{
			Code: serrors.ExitGeneralError,
			Err:  fmt.Errorf("unknown format %q; valid formats: yaml, json", format),
		}
	}
}
