package config

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/ocrsdk/tencentocr"
	"github.com/ocrsdk/tencentocr/routes"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSecretID, EnvSecretKey, EnvSessionToken, EnvRegion, EnvBaseURL, EnvTimeout} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ocr.yaml", `
drivers:
  tencent:
    secret_id: AKIDyaml
    secret_key: yaml-key
    region: ap-guangzhou
    timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	tc := cfg.Drivers.Tencent
	assert.Equal(t, "AKIDyaml", tc.SecretID)
	assert.Equal(t, "yaml-key", tc.SecretKey)
	assert.Equal(t, "ap-guangzhou", tc.Region)
	assert.Equal(t, routes.BaseURL, tc.BaseURL)
	assert.Equal(t, 5*time.Second, tc.Timeout)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ocr.yaml", `
drivers:
  tencent:
    secret_id: AKIDyaml
    secret_key: yaml-key
    region: ap-guangzhou
`)
	writeFile(t, dir, ".env", "TENCENTCLOUD_SECRET_KEY=dotenv-key\nTENCENTCLOUD_REGION=ap-beijing\n")
	t.Setenv(EnvRegion, "ap-shanghai")

	cfg, err := Load(path)
	require.NoError(t, err)

	tc := cfg.Drivers.Tencent
	assert.Equal(t, "AKIDyaml", tc.SecretID, "yaml value kept when nothing overrides it")
	assert.Equal(t, "dotenv-key", tc.SecretKey, ".env overrides yaml")
	assert.Equal(t, "ap-shanghai", tc.Region, "process env overrides .env")

	assert.Equal(t, "", os.Getenv(EnvSecretKey), ".env must not leak into the process environment")
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ocr.yaml", "drivers:\n  tencent:\n    region: ap-guangzhou\n")

	_, err := Load(path)
	require.Error(t, err)

	var ce sdk.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Reason, "secret_id is required")
	assert.Contains(t, ce.Reason, "secret_key is required")
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ocr.yaml", "drivers:\n  tencent:\n    secret_id: AKIDx\n    secret_key: key\n")
	t.Setenv(EnvTimeout, "thirty seconds")

	_, err := Load(path)
	require.Error(t, err)

	var ce sdk.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Reason, EnvTimeout)
}

func TestLoadSessionToken(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ocr.yaml", "drivers:\n  tencent:\n    secret_id: AKIDx\n    secret_key: key\n    session_token: yaml-token\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-token", cfg.Drivers.Tencent.SessionToken)
	assert.True(t, cfg.Credentials().HasToken())

	t.Setenv(EnvSessionToken, "env-token")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Drivers.Tencent.SessionToken)

	cfg.Drivers.Tencent.SessionToken = ""
	assert.False(t, cfg.Credentials().HasToken())
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "drivers: [")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drivers.Tencent.SecretID = "AKIDx"
	cfg.Drivers.Tencent.SecretKey = "key"
	cfg.Drivers.Tencent.Region = "ap-guangzhou"
	cfg.Drivers.Tencent.Timeout = 7 * time.Second

	cc := cfg.ClientConfig()
	assert.Equal(t, "AKIDx", cc.Credentials.SecretID())
	assert.Equal(t, "ap-guangzhou", cc.Region)
	assert.Equal(t, routes.BaseURL, cc.BaseURL)

	hc, ok := cc.HTTPClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, hc.Timeout)

	client, err := sdk.NewClient(cc)
	require.NoError(t, err)
	assert.Equal(t, routes.BaseURL, client.Endpoint())
}
