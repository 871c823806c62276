package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultServerURL         = "http://localhost:8000"
	DefaultModel             = "openai/gpt-4o-mini"
	DefaultLanguage          = "en"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultNominatimAgent    = "atlaschat/1.0"
)

type Config struct {
	ServerURL          string `json:"server_url"`
	DefaultModel       string `json:"default_model"`
	Language           string `json:"language"`
	OpenRouterAPIKey   string `json:"openrouter_api_key"`
	OpenRouterBaseURL  string `json:"openrouter_base_url,omitempty"`
	NominatimUserAgent string `json:"nominatim_user_agent,omitempty"`
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.DefaultModel == "" {
		c.DefaultModel = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.OpenRouterBaseURL == "" {
		c.OpenRouterBaseURL = DefaultOpenRouterBaseURL
	}
	if c.NominatimUserAgent == "" {
		c.NominatimUserAgent = DefaultNominatimAgent
	}
}

// applyEnv lets environment variables override the file, which keeps the
// serve command deployable without a config file at all.
func (c *Config) applyEnv() {
	if v := os.Getenv("ATLASCHAT_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("ATLASCHAT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("ATLASCHAT_LANG"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.OpenRouterAPIKey = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		c.OpenRouterBaseURL = v
	}
	if v := os.Getenv("ATLASCHAT_NOMINATIM_UA"); v != "" {
		c.NominatimUserAgent = v
	}
}

func (c *Config) HasAgentKey() bool {
	return c.OpenRouterAPIKey != ""
}

func getConfigPath() (string, error) {
	var configDir string

	// Use ATLASCHAT_HOME if set, otherwise use user's home directory
	if atlasHome := os.Getenv("ATLASCHAT_HOME"); atlasHome != "" {
		configDir = atlasHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".atlaschat", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	// Read existing config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		ServerURL:    DefaultServerURL,
		DefaultModel: DefaultModel,
		Language:     DefaultLanguage,
	}

	// Save default config to file
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return saveConfig(c, configPath)
}
