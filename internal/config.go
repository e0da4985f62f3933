package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the vault-level settings, stored at .brain/config.yaml
// inside the vault. Environment variables override the file so scripts and
// CI can steer a run without editing it.
type Config struct {
	VaultPath           string  `yaml:"vault_path,omitempty"`
	Provider            string  `yaml:"provider"`
	Model               string  `yaml:"model,omitempty"`
	WhisperModel        string  `yaml:"whisper_model"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	History             bool    `yaml:"history"`

	AnthropicAPIKey string `yaml:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `yaml:"openai_api_key,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:            "anthropic",
		WhisperModel:        "whisper-1",
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// ConfigPath locates the config file for a vault.
func ConfigPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, ".brain", "config.yaml")
}

// LoadConfig reads the vault config, falling back to defaults when the
// file is missing, and applies environment overrides on top.
func LoadConfig(vaultRoot string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath(vaultRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	// the root the config was loaded from is authoritative, even when the
	// file carries a stale vault_path from a moved or copied vault
	if vaultRoot != "" {
		cfg.VaultPath = vaultRoot
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if cfg.WhisperModel == "" {
		cfg.WhisperModel = "whisper-1"
	}

	return cfg, nil
}

// applyEnv layers environment overrides onto the file config. The vault
// path is deliberately absent: the caller resolves the root (flag over
// env over default) before LoadConfig, and an env override here would let
// BRAIN_VAULT silently beat an explicit --vault flag.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BRAIN_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("BRAIN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BRAIN_WHISPER_MODEL"); v != "" {
		cfg.WhisperModel = v
	}
	if v := os.Getenv("BRAIN_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
}

// SaveConfig writes the config inside the vault, creating .brain if needed.
func SaveConfig(vaultRoot string, cfg *Config) error {
	path := ConfigPath(vaultRoot)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// ModelName returns the configured model, or the provider's default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case "openai", "openrouter":
		return "gpt-4o-mini"
	}
	return "claude-sonnet-4-20250514"
}

// APIKey returns the credential matching the configured provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai", "openrouter":
		return c.OpenAIAPIKey
	}
	return ""
}
