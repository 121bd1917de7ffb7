package config

import (
	"os"
	"testing"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SelectedProvider != "gemini" || cfg.SelectedModel != "gemini-pro" {
		t.Errorf("defaults = %s/%s; want gemini/gemini-pro", cfg.SelectedProvider, cfg.SelectedModel)
	}
	if cfg.AnswersPath != DefaultAnswersPath {
		t.Errorf("AnswersPath = %q; want %q", cfg.AnswersPath, DefaultAnswersPath)
	}
	if cfg.Deterministic {
		t.Error("Deterministic must default to false")
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.SelectedProvider = "anthropic"
	cfg.SelectedModel = "claude-opus-4-5"
	cfg.SetAPIKey("anthropic", "sk-test")
	cfg.AnswersPath = "audits/protocol.yaml"
	cfg.Deterministic = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.SelectedProvider != "anthropic" || loaded.SelectedModel != "claude-opus-4-5" {
		t.Errorf("loaded %s/%s", loaded.SelectedProvider, loaded.SelectedModel)
	}
	if loaded.GetAPIKey("anthropic") != "sk-test" {
		t.Error("API key did not survive the round trip")
	}
	if loaded.AnswersPath != "audits/protocol.yaml" || !loaded.Deterministic {
		t.Errorf("audit defaults did not survive: %q/%v", loaded.AnswersPath, loaded.Deterministic)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config written with %v; want 0600 (holds API keys)", info.Mode().Perm())
	}
}

func TestResolveAnswersPath(t *testing.T) {
	cfg := &Config{AnswersPath: "configured.yaml"}
	if got := cfg.ResolveAnswersPath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("flag value must win, got %q", got)
	}
	if got := cfg.ResolveAnswersPath(""); got != "configured.yaml" {
		t.Errorf("configured path must be used, got %q", got)
	}
	empty := &Config{}
	if got := empty.ResolveAnswersPath(""); got != DefaultAnswersPath {
		t.Errorf("fallback = %q; want %q", got, DefaultAnswersPath)
	}
}
