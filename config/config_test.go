package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
server:
  port: 9000
dataSource:
  backend: static
  dataDir: ./fixtures
ai:
  provider: gemini
  chatWindow: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, BackendStatic, cfg.DataSource.Backend)
	assert.Equal(t, "/srv/data", cfg.DataSource.DataDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "30s", cfg.AI.ChatWindow.String())
	assert.Equal(t, "/srv/data/tts_cache", cfg.TTS.CacheDir)
}

func TestLoadConfig_MongoRequiresURI(t *testing.T) {
	t.Setenv("DATA_BACKEND", "mongo")
	t.Setenv("MONGO_URL", "")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("DATA_BACKEND", "sqlite")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	var cfg Config
	err := cfg.applyEnv(func(key string) (string, bool) {
		if key == "PORT" {
			return "eighty", true
		}
		return "", false
	})
	require.Error(t, err)
}
