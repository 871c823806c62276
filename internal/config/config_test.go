package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATLASCHAT_HOME", home)
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultModel, cfg.DefaultModel)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultOpenRouterBaseURL, cfg.OpenRouterBaseURL)
	assert.False(t, cfg.HasAgentKey())

	// The default config is persisted for the next run.
	_, err = os.Stat(filepath.Join(home, ".atlaschat", "config.json"))
	assert.NoError(t, err)
}

func TestLoadConfig_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATLASCHAT_HOME", home)
	t.Setenv("ATLASCHAT_SERVER_URL", "")
	t.Setenv("ATLASCHAT_LANG", "")

	dir := filepath.Join(home, ".atlaschat")
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := json.Marshal(Config{
		ServerURL: "http://agent.example:9000",
		Language:  "tr",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), data, 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://agent.example:9000", cfg.ServerURL)
	assert.Equal(t, "tr", cfg.Language)
	// Unset fields still receive defaults.
	assert.Equal(t, DefaultModel, cfg.DefaultModel)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATLASCHAT_HOME", home)
	t.Setenv("ATLASCHAT_SERVER_URL", "http://override:8000")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://override:8000", cfg.ServerURL)
	assert.Equal(t, "sk-or-test", cfg.OpenRouterAPIKey)
	assert.True(t, cfg.HasAgentKey())
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATLASCHAT_HOME", home)

	cfg := &Config{
		ServerURL:    "http://localhost:8765",
		DefaultModel: "google/gemini-2.0-flash-001",
		Language:     "en",
	}
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(filepath.Join(home, ".atlaschat", "config.json"))
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, cfg.ServerURL, loaded.ServerURL)
	assert.Equal(t, cfg.DefaultModel, loaded.DefaultModel)
}
