package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/shipctl/scaffold/internal/errors"
)

func TestResolve_Valid(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"blog", "blog"},
		{"  blog  ", "blog"},
		{"inventory_app", "inventory_app"},
		{"app2", "app2"},
		{"MyApp", "MyApp"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			id, err := Resolve(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id.String())
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	first, err := Resolve("blog")
	require.NoError(t, err)
	second, err := Resolve("blog")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := Resolve(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, serrors.ErrInvalidIdentifier)
	}
}

func TestResolve_PathSeparators(t *testing.T) {
	for _, raw := range []string{"foo/bar", `foo\bar`, "../escape"} {
		_, err := Resolve(raw)
		require.Error(t, err, "input %q should be rejected", raw)
		assert.ErrorIs(t, err, serrors.ErrInvalidIdentifier)
	}
}

func TestResolve_InvalidCharacters(t *testing.T) {
	for _, raw := range []string{"my-app", "my app", "app.name", "app!"} {
		_, err := Resolve(raw)
		require.Error(t, err, "input %q should be rejected", raw)
		assert.ErrorIs(t, err, serrors.ErrInvalidIdentifier)
	}
}

func TestResolve_MustStartWithLetter(t *testing.T) {
	for _, raw := range []string{"1app", "_app", "9"} {
		_, err := Resolve(raw)
		require.Error(t, err, "input %q should be rejected", raw)
	}
}

func TestResolve_ReservedNames(t *testing.T) {
	// Fixed scaffold directory names collide with the identifier's own
	// top-level directory.
	for _, raw := range []string{"config", "tests", "features", "venv", "Config", "VENV"} {
		_, err := Resolve(raw)
		require.Error(t, err, "input %q should be rejected", raw)
		assert.ErrorIs(t, err, serrors.ErrInvalidIdentifier)

		var detail *serrors.DetailError
		require.ErrorAs(t, err, &detail)
		assert.Contains(t, detail.Message, "collides")
	}
}

func TestReservedNames_CoverFixedTopLevelDirs(t *testing.T) {
	assert.ElementsMatch(t, []string{"config", "features", "tests", "venv"}, ReservedNames())
}
