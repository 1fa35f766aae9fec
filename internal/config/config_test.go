package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KOPKAR_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, filepath.IsAbs(cfg.Paths.UploadDir))
	assert.True(t, filepath.IsAbs(cfg.Paths.ExportDir))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KOPKAR_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("KOPKAR_SERVER_PORT", "9000")
	t.Setenv("KOPKAR_LOGGING_LEVEL", "debug")
	t.Setenv("KOPKAR_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
server:
  port: 9999
logging:
  level: warn
paths:
  upload_dir: `+filepath.Join(dir, "data")+`
`), 0o644))
	t.Setenv("KOPKAR_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Paths.UploadDir)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: 9999\n"), 0o644))
	t.Setenv("KOPKAR_CONFIG_FILE", configFile)
	t.Setenv("KOPKAR_SERVER_PORT", "7777")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("KOPKAR_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "KOPKAR_SERVER_PORT", "70000"},
		{"unknown log level", "KOPKAR_LOGGING_LEVEL", "verbose"},
		{"unknown log output", "KOPKAR_LOGGING_OUTPUT", "syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	cfg.Paths.UploadDir = filepath.Join(dir, "uploads")
	cfg.Paths.ExportDir = filepath.Join(dir, "exports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")

	require.NoError(t, cfg.EnsureDirectories())
	for _, d := range []string{cfg.Paths.UploadDir, cfg.Paths.ExportDir, cfg.Paths.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
