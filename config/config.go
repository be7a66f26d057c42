// Package config loads Tencent OCR client settings from a YAML file, an
// optional .env file next to it, and environment variables.
//
// Precedence, highest first: process environment, .env file, YAML file,
// defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	sdk "github.com/ocrsdk/tencentocr"
	"github.com/ocrsdk/tencentocr/routes"
)

// Environment variable names.
const (
	EnvSecretID     = "TENCENTCLOUD_SECRET_ID"
	EnvSecretKey    = "TENCENTCLOUD_SECRET_KEY"    //nolint:gosec // env var name, not a credential
	EnvSessionToken = "TENCENTCLOUD_SESSION_TOKEN" //nolint:gosec // env var name, not a credential
	EnvRegion       = "TENCENTCLOUD_REGION"
	EnvBaseURL      = "TENCENT_OCR_BASE_URL"
	EnvTimeout      = "TENCENT_OCR_TIMEOUT"
)

// Config mirrors the driver layout used by OCR config files:
//
//	drivers:
//	  tencent:
//	    secret_id: AKID...
//	    secret_key: ...
type Config struct {
	Drivers DriversConfig `yaml:"drivers"`
}

// DriversConfig holds per-provider sections. Only Tencent is supported.
type DriversConfig struct {
	Tencent TencentConfig `yaml:"tencent"`
}

// TencentConfig holds Tencent Cloud OCR settings.
type TencentConfig struct {
	SecretID  string `yaml:"secret_id"`
	SecretKey string `yaml:"secret_key"`
	// SessionToken is set when SecretID/SecretKey are temporary STS credentials.
	SessionToken string        `yaml:"session_token"`
	Region       string        `yaml:"region"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a configuration without credentials.
func DefaultConfig() *Config {
	return &Config{Drivers: DriversConfig{Tencent: TencentConfig{
		BaseURL: routes.BaseURL,
		Timeout: 30 * time.Second,
	}}}
}

// Load reads configuration from a YAML file (optional when path is empty),
// applies .env and environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	envDir := "."
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		envDir = filepath.Dir(path)
	}

	dotenv, err := readDotEnv(filepath.Join(envDir, ".env"))
	if err != nil {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	err = applyEnvOverrides(cfg, func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})
	if err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// readDotEnv parses a .env file without touching the process environment.
// A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return values, err
}

func applyEnvOverrides(cfg *Config, lookup func(string) string) error {
	t := &cfg.Drivers.Tencent
	if v := lookup(EnvSecretID); v != "" {
		t.SecretID = v
	}
	if v := lookup(EnvSecretKey); v != "" {
		t.SecretKey = v
	}
	if v := lookup(EnvSessionToken); v != "" {
		t.SessionToken = v
	}
	if v := lookup(EnvRegion); v != "" {
		t.Region = v
	}
	if v := lookup(EnvBaseURL); v != "" {
		t.BaseURL = v
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return sdk.ConfigError{Reason: fmt.Sprintf("%s: invalid duration %q", EnvTimeout, v)}
		}
		t.Timeout = d
	}
	return nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	t := c.Drivers.Tencent
	var problems []string
	if strings.TrimSpace(t.SecretID) == "" {
		problems = append(problems, "drivers.tencent.secret_id is required")
	}
	if strings.TrimSpace(t.SecretKey) == "" {
		problems = append(problems, "drivers.tencent.secret_key is required")
	}
	if t.Timeout < 0 {
		problems = append(problems, "drivers.tencent.timeout must not be negative")
	}
	if len(problems) > 0 {
		return sdk.ConfigError{Reason: strings.Join(problems, "; ")}
	}
	return nil
}

// Credentials returns the configured credential pair, with the session
// token attached when one is set.
func (c *Config) Credentials() sdk.Credentials {
	t := c.Drivers.Tencent
	creds := sdk.NewCredentials(t.SecretID, t.SecretKey)
	if t.SessionToken != "" {
		creds = creds.WithToken(t.SessionToken)
	}
	return creds
}

// ClientConfig converts the file settings into an sdk.Config. Telemetry and
// stages are left for the caller to fill in.
func (c *Config) ClientConfig() sdk.Config {
	t := c.Drivers.Tencent
	return sdk.Config{
		Credentials: c.Credentials(),
		BaseURL:     t.BaseURL,
		Region:      t.Region,
		HTTPClient:  &http.Client{Timeout: t.Timeout},
	}
}
