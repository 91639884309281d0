package inventory

import (
	"os"
	"path/filepath"

	"github.com/shipctl/scaffold/internal/identity"
	"github.com/shipctl/scaffold/internal/output"
)

// ConfirmationToken is the exact phrase a user must type to authorize
// teardown. Compared case-sensitively, requested fresh on every invocation,
// never persisted.
const ConfirmationToken = "DESTROY"

// RemovalFailure records one candidate path that could not be removed.
type RemovalFailure struct {
	Path string
	Err  error
}

// Report describes the outcome of a teardown run.
type Report struct {
	// Canceled is true when the confirmation token did not match; no
	// filesystem mutation happened.
	Canceled bool

	// Removed lists candidate paths that existed and were removed.
	Removed []string

	// Skipped lists candidate paths that were already absent.
	Skipped []string

	// Failures lists candidate paths whose removal failed. Failures never
	// abort the remaining removals.
	Failures []RemovalFailure
}

// Incomplete reports whether any removal failed.
func (r *Report) Incomplete() bool {
	return len(r.Failures) > 0
}

// Teardown removes every candidate path derived from the identifier under
// root, gated on the confirmation token.
//
// Absent paths are skipped without error, so re-running teardown on an
// already-clean directory is a no-op. Paths outside the candidate set are
// never touched.
func Teardown(root string, id identity.Identifier, confirmation string) *Report {
	if confirmation != ConfirmationToken {
		output.Debug("teardown canceled", "reason", "confirmation mismatch")
		return &Report{Canceled: true}
	}

	report := &Report{}
	for _, candidate := range CandidatePaths(id) {
		removeCandidate(root, candidate, report)
	}
	return report
}

// removeCandidate removes one candidate path if it exists, collecting the
// outcome in report.
func removeCandidate(root, candidate string, report *Report) {
	target := filepath.Join(root, candidate)

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		report.Skipped = append(report.Skipped, candidate)
		return
	}
	if err != nil {
		report.Failures = append(report.Failures, RemovalFailure{Path: candidate, Err: err})
		return
	}

	if info.IsDir() {
		err = os.RemoveAll(target)
	} else {
		err = os.Remove(target)
	}
	if err != nil {
		report.Failures = append(report.Failures, RemovalFailure{Path: candidate, Err: err})
		return
	}

	output.Debug("removed", "path", candidate, "dir", info.IsDir())
	report.Removed = append(report.Removed, candidate)
}
