package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HOST", "PORT", "DEVSECQUEST_CORS_ORIGINS", "DEVSECQUEST_DB",
		"DEVSECQUEST_LOG_LEVEL", "DEVSECQUEST_LOG_FORMAT",
		"DEVSECQUEST_AWARD_POINTS", "DEVSECQUEST_PERSIST_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 100, cfg.Validation.AwardPoints)
	assert.Equal(t, 5*time.Second, cfg.Validation.PersistTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "devsecquest.yml", `
port: 8080
log_level: debug
log_format: json
award_points: 250
persist_timeout: 2s
cors_origins:
  - https://app.example.com
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 250, cfg.Validation.AwardPoints)
	assert.Equal(t, 2*time.Second, cfg.Validation.PersistTimeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, t.TempDir(), "c.yml", "port: 8080\ndb: /from/file.db\n")
	t.Setenv("PORT", "9090")
	t.Setenv("DEVSECQUEST_DB", "/from/env.db")
	t.Setenv("DEVSECQUEST_CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"bad yaml", "port: [", nil},
		{"bad duration", "persist_timeout: soon", nil},
		{"bad port env", "", map[string]string{"PORT": "http"}},
		{"negative points", "award_points: -5", nil},
		{"bad format", "log_format: xml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			p := writeFile(t, dir, tt.name+".yml", tt.content)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	_, err := Locate(dir)
	assert.ErrorIs(t, err, ErrNoConfigFile)

	global := writeFile(t, xdg, "devsecquest/config.yml", "port: 1")
	got, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, global, got)

	local := writeFile(t, dir, "devsecquest.yaml", "port: 2")
	got, err = Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, local, got, "local file wins over global")
}
