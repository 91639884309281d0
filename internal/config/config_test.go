package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipctl/scaffold/internal/testutil"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestLoad_GeneratesPasswordWhenUnset(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Admin.Generated)
	assert.Len(t, cfg.Admin.Password, 32) // 16 random bytes, hex encoded

	other, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Admin.Password, other.Admin.Password)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SCAFFOLD_PYTHON", "/usr/local/bin/python3.12")
	t.Setenv("SCAFFOLD_ADMIN_USERNAME", "ops")
	t.Setenv("SCAFFOLD_ADMIN_PASSWORD", "hunter2")
	t.Setenv("SCAFFOLD_ADMIN_EMAIL", "ops@example.org")

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/python3.12", cfg.Python)
	assert.Equal(t, "ops", cfg.Admin.Username)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
	assert.Equal(t, "ops@example.org", cfg.Admin.Email)
	assert.False(t, cfg.Admin.Generated)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "scaffold.yaml", `
python: python3.11
admin:
  username: root
  password: filepw
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "python3.11", cfg.Python)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "filepw", cfg.Admin.Password)
	assert.False(t, cfg.Admin.Generated)
	// Unset file values keep their defaults.
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "scaffold.yaml", "python: python3.11\n")

	t.Setenv("SCAFFOLD_PYTHON", "python3.13")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "python3.13", cfg.Python)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
