// Package config persists the tool's per-user settings at
// ~/.dappaudit/config.yaml: the selected report-writing provider and
// model, per-provider API keys, and the audit defaults (answers file,
// scoring mode) shared by the score and audit commands.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAnswersPath is used when neither the config file nor a flag
// names a questionnaire answers file.
const DefaultAnswersPath = "answers.yaml"

type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
}

type Config struct {
	SelectedProvider string                    `yaml:"selected_provider"`
	SelectedModel    string                    `yaml:"selected_model"`
	Providers        map[string]ProviderConfig `yaml:"providers"`

	// AnswersPath is the default questionnaire answers file for the
	// score and audit commands; flags override it per run.
	AnswersPath string `yaml:"answers_path"`
	// Deterministic makes audit score from baseline findings by
	// default, keeping the AI-written report as narrative only.
	Deterministic bool `yaml:"deterministic"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".dappaudit")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func defaultConfig() *Config {
	return &Config{
		SelectedProvider: "gemini",
		SelectedModel:    "gemini-pro",
		Providers:        make(map[string]ProviderConfig),
		AnswersPath:      DefaultAnswersPath,
	}
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetAPIKey(provider, key string) {
	p := c.Providers[provider]
	p.APIKey = key
	c.Providers[provider] = p
}

func (c *Config) GetAPIKey(provider string) string {
	return c.Providers[provider].APIKey
}

// ResolveAnswersPath picks the answers file for a run: an explicit
// flag value wins, then the configured default, then
// DefaultAnswersPath.
func (c *Config) ResolveAnswersPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if c.AnswersPath != "" {
		return c.AnswersPath
	}
	return DefaultAnswersPath
}
