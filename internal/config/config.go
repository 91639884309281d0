// Package config provides configuration loading for the scaffold CLI.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/shipctl/scaffold/internal/output"
)

// Environment variable prefix for scaffold configuration.
const envPrefix = "SCAFFOLD"

// AdminCredentials configure the default administrative account created by
// the post-init stage.
type AdminCredentials struct {
	// Username defaults to "admin".
	// Env: SCAFFOLD_ADMIN_USERNAME
	Username string `mapstructure:"username"`

	// Password is required; when unset a random one is generated so no
	// fixed secret ever ships in the generated project.
	// Env: SCAFFOLD_ADMIN_PASSWORD
	Password string `mapstructure:"password"`

	// Email defaults to "admin@example.com".
	// Env: SCAFFOLD_ADMIN_EMAIL
	Email string `mapstructure:"email"`

	// Generated records whether the password was generated this run, so the
	// launch summary can tell the operator to note it down.
	Generated bool `mapstructure:"-"`
}

// Config represents the scaffold CLI configuration.
type Config struct {
	// Python is the host interpreter used to create the venv.
	// Env: SCAFFOLD_PYTHON, Default: "python3"
	Python string `mapstructure:"python"`

	// Admin holds the administrative account credentials.
	Admin AdminCredentials `mapstructure:"admin"`
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. A .env file in the working
// directory is loaded first so its values are visible to the env bindings.
func NewLoader() *Loader {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		output.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("python", "SCAFFOLD_PYTHON")
	_ = v.BindEnv("admin.username", "SCAFFOLD_ADMIN_USERNAME")
	_ = v.BindEnv("admin.password", "SCAFFOLD_ADMIN_PASSWORD")
	_ = v.BindEnv("admin.email", "SCAFFOLD_ADMIN_EMAIL")

	v.SetDefault("python", "python3")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@example.com")

	return &Loader{v: v}
}

// Load loads configuration from the optional config file plus environment
// variables. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Admin.Password == "" {
		pw, err := generatePassword()
		if err != nil {
			return nil, fmt.Errorf("generating admin password: %w", err)
		}
		cfg.Admin.Password = pw
		cfg.Admin.Generated = true
	}

	return &cfg, nil
}

// generatePassword returns a random 16-byte hex password.
func generatePassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
