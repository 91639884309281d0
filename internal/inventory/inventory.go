// Package inventory tracks the paths a scaffold run creates and reverses
// them on demand.
package inventory

import (
	"path/filepath"
	"strings"

	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/toolchain"
)

// Entry is one created path.
type Entry struct {
	// Path is relative to the project root.
	Path string

	// Dir reports whether the entry is a directory.
	Dir bool
}

// Snapshot is the ordered list of paths actually created during a run. It
// lives only for the run; the filesystem is the only persistent record.
type Snapshot struct {
	entries []Entry
}

// Append records a created path.
func (s *Snapshot) Append(path string, dir bool) {
	s.entries = append(s.entries, Entry{Path: path, Dir: dir})
}

// Entries returns the recorded entries in creation order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of recorded entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// TopLevel returns the first path element of an entry path, which is what
// the teardown candidate set is keyed on.
func TopLevel(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	if i := strings.Index(clean, "/"); i >= 0 {
		return clean[:i]
	}
	return clean
}

// CandidateFiles returns the fixed top-level files the pipeline can create.
func CandidateFiles() []string {
	return []string{
		"manage.py",
		"requirements.txt",
		"setup.py",
		"behave.ini",
		"db.sqlite3",
		"pytest.ini",
		".gitignore",
		"MISSION.md",
	}
}

// CandidateDirs returns the fixed top-level directories the pipeline can
// create, plus the identifier's own directory.
func CandidateDirs(id identity.Identifier) []string {
	return []string{
		toolchain.VenvDir,
		"tests",
		"features",
		id.String(),
		"config",
		".git",
	}
}

// CandidatePaths returns the complete candidate path set for an identifier:
// every top-level name the pipeline can create, derived purely from the
// identifier plus the fixed manifest. Teardown removes exactly this set and
// nothing else.
func CandidatePaths(id identity.Identifier) []string {
	return append(CandidateFiles(), CandidateDirs(id)...)
}
