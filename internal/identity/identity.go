// Package identity validates and normalizes the project identifier that
// binds a generated project tree together.
package identity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	serrors "github.com/shipctl/scaffold/internal/errors"
)

// Identifier is a validated project name. It is a legal directory name and a
// legal Python package name, so it can be used verbatim for the app
// directory, the URL namespace, and the settings module references.
type Identifier string

// reservedNames are the fixed top-level directory names the pipeline itself
// creates. An identifier colliding with one of these would make its own
// directory overwrite (or be overwritten by) a fixed-name directory.
var reservedNames = map[string]bool{
	"config":   true,
	"tests":    true,
	"features": true,
	"venv":     true,
}

// ReservedNames returns the fixed names an identifier must not collide with.
func ReservedNames() []string {
	return []string{"config", "features", "tests", "venv"}
}

// Resolve validates raw user input and returns an Identifier.
//
// Constraints: non-empty after trimming, no path separators, a valid Python
// package name (letters, digits, underscores, starting with a letter), and
// not one of the reserved top-level names.
func Resolve(raw string) (Identifier, error) {
	name := strings.TrimSpace(raw)

	if name == "" {
		return "", serrors.NewIdentifierError(
			"project name cannot be empty",
			"Provide a name such as \"blog\" or \"inventory_app\".")
	}

	if strings.ContainsAny(name, `/\`) {
		return "", serrors.NewIdentifierError(
			fmt.Sprintf("project name %q contains a path separator", name),
			"Use a plain directory name without slashes.")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", serrors.NewIdentifierError(
				fmt.Sprintf("project name %q contains invalid character %q", name, r),
				"Use letters, digits, and underscores only; the name doubles as a Python package name.")
		}
	}

	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) {
		return "", serrors.NewIdentifierError(
			fmt.Sprintf("project name %q must start with a letter", name),
			"Python package names cannot start with a digit or underscore.")
	}

	if reservedNames[strings.ToLower(name)] {
		return "", serrors.NewIdentifierError(
			fmt.Sprintf("project name %q collides with a fixed scaffold directory", name),
			fmt.Sprintf("Reserved names: %s.", strings.Join(ReservedNames(), ", ")))
	}

	return Identifier(name), nil
}

// String returns the identifier as a plain string.
func (id Identifier) String() string {
	return string(id)
}
