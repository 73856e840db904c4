package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend    BackendConfig    `yaml:"backend"`
	Mock       MockConfig       `yaml:"mock"`
	Operations OperationsConfig `yaml:"operations"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Chat       ChatConfig       `yaml:"chat"`
	Slack      SlackConfig      `yaml:"slack"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BackendConfig points the lookup client at the investigation backend.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Mode           string `yaml:"mode"`         // "live" or "mock"
	WrapResults    bool   `yaml:"wrap_results"` // wrap live results with api/query_params/found
}

// MockConfig selects the envelope convention for mock-mode results.
type MockConfig struct {
	Convention string `yaml:"convention"` // "legacy" or "unified"
}

// OperationsConfig locates user-defined operation manifests.
type OperationsConfig struct {
	ManifestDir string `yaml:"manifest_dir"`
}

type GatewayConfig struct {
	Addr string `yaml:"addr"`
}

type ChatConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	MaxSteps int    `yaml:"max_steps"`
}

type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
	AppToken string `yaml:"app_token"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfigPath returns the default config path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./insight.yaml"
	}
	return filepath.Join(home, ".config", "insight", "config.yaml")
}

// DefaultHistoryPath returns the console history file path
func DefaultHistoryPath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "history")
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		config.applyEnv()
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// NewDefaultConfig returns a default configuration
func NewDefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:8654",
			TimeoutSeconds: 10,
			Mode:           "live",
			WrapResults:    true,
		},
		Mock: MockConfig{
			Convention: "legacy",
		},
		Gateway: GatewayConfig{
			Addr: ":8700",
		},
		Chat: ChatConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			MaxSteps: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// applyEnv overlays environment variables onto the loaded config.
func (c *Config) applyEnv() {
	if v := os.Getenv("INSIGHT_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("INSIGHT_BACKEND_MODE"); v != "" {
		c.Backend.Mode = v
	}
	if v := os.Getenv("INSIGHT_BACKEND_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("INSIGHT_GATEWAY_ADDR"); v != "" {
		c.Gateway.Addr = v
	}
	if v := os.Getenv("INSIGHT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		c.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_APP_TOKEN"); v != "" {
		c.Slack.AppToken = v
	}
}

// GetTimeoutSeconds returns the backend timeout (defaults to 10)
func (c *Config) GetTimeoutSeconds() int {
	if c.Backend.TimeoutSeconds <= 0 {
		return 10
	}
	return c.Backend.TimeoutSeconds
}

// GetBackendMode returns the backend mode (defaults to "live")
func (c *Config) GetBackendMode() string {
	mode := strings.ToLower(c.Backend.Mode)
	if mode != "mock" {
		return "live"
	}
	return mode
}

// GetMockConvention returns the mock envelope convention (defaults to "legacy")
func (c *Config) GetMockConvention() string {
	conv := strings.ToLower(c.Mock.Convention)
	if conv != "unified" {
		return "legacy"
	}
	return conv
}

// GetMaxSteps returns the chat agent step limit (defaults to 8)
func (c *Config) GetMaxSteps() int {
	if c.Chat.MaxSteps <= 0 {
		return 8
	}
	return c.Chat.MaxSteps
}

// GetAPIKey returns the chat API key from config or environment
func (c *Config) GetAPIKey() string {
	if c.Chat.APIKey != "" {
		return c.Chat.APIKey
	}

	provider := c.Chat.Provider
	if provider == "" {
		provider = "openai"
	}
	return os.Getenv(fmt.Sprintf("%s_API_KEY", strings.ToUpper(provider)))
}
