package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "simulated", cfg.Storage.Type)
	assert.Equal(t, "gemini-3-flash-preview", cfg.AI.Model)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.True(t, cfg.Seed.DemoData)
	assert.Empty(t, cfg.ConfigPath)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
storage:
  max_proof_size_mb: 5
ai:
  model: custom-model
`)
	t.Setenv("API_KEY", "secret-key")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "custom-model", cfg.AI.Model)
	assert.Equal(t, "secret-key", cfg.AI.APIKey)
	assert.True(t, cfg.AI.Configured())
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxProofBytes())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestStorageConfig_MaxProofBytesUnlimited(t *testing.T) {
	assert.Zero(t, StorageConfig{}.MaxProofBytes())
	assert.Zero(t, StorageConfig{MaxProofSizeMB: -1}.MaxProofBytes())
}
