// Package scaffold renders registry artifacts and writes them to the
// filesystem.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/output"
	"github.com/shipctl/scaffold/internal/registry"
)

// ResolvedArtifact is an ArtifactSpec bound to concrete values.
type ResolvedArtifact struct {
	// Key is the registry key the artifact came from.
	Key string

	// Path is the final path relative to the scaffold root.
	Path string

	// Kind is file or directory.
	Kind registry.Kind

	// Content is the rendered content (file kinds only).
	Content []byte
}

// Materializer writes resolved artifacts under a root directory.
type Materializer struct {
	root string
	vars registry.VariableSet
}

// New creates a materializer rooted at root with the given variable set.
func New(root string, vars registry.VariableSet) *Materializer {
	return &Materializer{root: root, vars: vars}
}

// Materialize resolves one spec and writes it to disk.
//
// Directories are created with all missing ancestors and succeed if they
// already exist. Files are written with atomic intent: the rendered content
// goes to a temporary file in the target directory which is then renamed
// into place, so a write failure never leaves partial content behind.
func (m *Materializer) Materialize(spec registry.ArtifactSpec) (*ResolvedArtifact, error) {
	relPath, err := spec.ResolvePath(m.vars)
	if err != nil {
		return nil, err
	}

	art := &ResolvedArtifact{
		Key:  spec.Key,
		Path: relPath,
		Kind: spec.Kind,
	}
	target := filepath.Join(m.root, filepath.FromSlash(relPath))

	if spec.Kind == registry.KindDirectory {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return nil, serrors.NewFilesystemError("creating directory", relPath, err)
		}
		output.Debug("created directory", "path", relPath)
		return art, nil
	}

	content, err := spec.Content(m.vars)
	if err != nil {
		return nil, err
	}
	art.Content = content

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, serrors.NewFilesystemError("creating parent directory", relPath, err)
	}

	if err := writeFileAtomic(target, content); err != nil {
		return nil, serrors.NewFilesystemError("writing file", relPath, err)
	}

	output.Debug("created file", "path", relPath)
	return art, nil
}

// writeFileAtomic writes content to a temporary file next to the target and
// renames it into place.
func writeFileAtomic(target string, content []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// MaterializeAll materializes every spec in order and returns the artifacts
// created so far. It aborts on the first error, leaving earlier artifacts in
// place; teardown is the designated remedy for a partial tree.
func (m *Materializer) MaterializeAll(specs []registry.ArtifactSpec) ([]*ResolvedArtifact, error) {
	created := make([]*ResolvedArtifact, 0, len(specs))
	for _, spec := range specs {
		art, err := m.Materialize(spec)
		if err != nil {
			return created, fmt.Errorf("materializing %s: %w", spec.Key, err)
		}
		created = append(created, art)
	}
	return created, nil
}
