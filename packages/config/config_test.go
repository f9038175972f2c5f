package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https", cfg.Scheme)
	assert.Equal(t, 30000, cfg.Timeout)
	assert.Equal(t, "endpoints.yaml", cfg.Endpoints)
	assert.Equal(t, "/api", cfg.GetBasePath())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fetchkit.config.json")
	content := `{
		"host": "api.example.com",
		"port": 8443,
		"version": "v2",
		"basePath": "",
		"headers": {"X-Tenant": "acme"},
		"noColor": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "api.example.com", cfg.Host)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, "v2", cfg.Version)
	assert.Equal(t, "", cfg.GetBasePath(), "explicit empty basePath means gateway style")
	assert.Equal(t, "acme", cfg.Headers["X-Tenant"])
	assert.True(t, cfg.GetNoColor())
	// Defaults survive for unset fields
	assert.Equal(t, 30000, cfg.Timeout)
}

func TestFindAndLoadConfig_FallsBackToDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestConfig_Merge(t *testing.T) {
	base := &Config{
		Host:    "base.example.com",
		Timeout: 1000,
		Headers: map[string]string{"A": "1", "B": "1"},
	}
	merged := base.Merge(&Config{
		Host:     "override.example.com",
		BasePath: StringPtr(""),
		Verbose:  BoolPtr(true),
		Headers:  map[string]string{"B": "2", "C": "3"},
	})

	assert.Equal(t, "override.example.com", merged.Host)
	assert.Equal(t, 1000, merged.Timeout, "unset fields keep base values")
	assert.Equal(t, "", merged.GetBasePath())
	assert.True(t, merged.GetVerbose())
	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "3"}, merged.Headers)

	assert.Same(t, base, base.Merge(nil))
}
