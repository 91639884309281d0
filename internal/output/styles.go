package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, stage names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" artifact status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" artifact status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "removed" artifact status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" artifact status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (project names, artifact paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (launching, installing, destroying).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Artifact status constants.
const (
	StatusCreated = "created"
	StatusSkipped = "skipped"
	StatusRemoved = "removed"
	StatusFailed  = "failed"
)

// StatusStyle returns the lipgloss style for a given artifact status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width for the artifact path column
// before the status suffix, so status words align consistently.
const minPathColumnWidth = 40

// FormatArtifactLine renders an artifact path with a right-aligned,
// color-coded status suffix.
//
// Format: a:<path>  <status>
//
// The "a:" prefix is dim, the path is cyan, and the status uses StatusStyle.
func FormatArtifactLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("a:")
	styledPath := StyleNoun.Render(path)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FileEntry pairs a generated path with a short description.
type FileEntry struct {
	Path        string
	Description string
}

// RenderFileList renders file entries with descriptions aligned at the given
// column. Descriptions are dimmed; empty descriptions render the path only.
func RenderFileList(entries []FileEntry, col int) string {
	var b strings.Builder
	for _, e := range entries {
		if e.Description == "" {
			b.WriteString(e.Path + "\n")
			continue
		}
		padding := col - len(e.Path)
		if padding < 2 {
			padding = 2
		}
		b.WriteString(fmt.Sprintf("%s%s%s\n", e.Path, strings.Repeat(" ", padding), StyleDim.Render(e.Description)))
	}
	return b.String()
}
