package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults checks the env-only fallback with defaults
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "teranga-client.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "127.0.0.1:0", cfg.Callback.Addr())
	assert.Equal(t, "XOF", cfg.Payment.Currency)
}

// TestLoad_File checks loading from an explicit YAML path
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server_url: https://api.teranga.example
db_path: /tmp/teranga.db
http:
  timeout: 10s
payment:
  currency: EUR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.teranga.example", cfg.ServerURL)
	assert.Equal(t, "/tmp/teranga.db", cfg.DBPath)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "EUR", cfg.Payment.Currency)
}

// TestLoad_EnvOverridesFile checks that env vars win over the file
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: https://file.example\n"), 0600))

	t.Setenv("TERANGA_SERVER_URL", "https://env.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.ServerURL)
}

// TestLoad_MissingFile checks the error for a bad explicit path
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
