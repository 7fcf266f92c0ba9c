package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Reload()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("expected default language en, got %s", cfg.Language)
	}
	if cfg.DecimalSeparator != "." {
		t.Errorf("expected default decimal separator '.', got %q", cfg.DecimalSeparator)
	}
	if cfg.ThousandSeparator != "," {
		t.Errorf("expected default thousand separator ',', got %q", cfg.ThousandSeparator)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected default timezone UTC, got %s", cfg.Timezone)
	}
}

func TestLoadUserConfigMerge(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	configDir := filepath.Join(tmpHome, ".config", "smartcalc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	userConfig := "thousand_separator: \".\"\n"
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(userConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Reload()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ThousandSeparator != "." {
		t.Errorf("expected user override '.', got %q", cfg.ThousandSeparator)
	}
	if cfg.DecimalSeparator != "." {
		t.Errorf("expected default decimal separator preserved, got %q", cfg.DecimalSeparator)
	}
}

func TestLoadFallbackConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	fallbackConfig := "timezone: PST\n"
	fallbackPath := filepath.Join(tmpHome, ".smartcalcrc.yaml")
	if err := os.WriteFile(fallbackPath, []byte(fallbackConfig), 0644); err != nil {
		t.Fatalf("failed to write fallback config: %v", err)
	}

	cfg, err := Reload()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timezone != "PST" {
		t.Errorf("expected fallback override PST, got %s", cfg.Timezone)
	}
}

func TestLoadXDGPriorityOverFallback(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	fallbackConfig := "timezone: PST\n"
	fallbackPath := filepath.Join(tmpHome, ".smartcalcrc.yaml")
	if err := os.WriteFile(fallbackPath, []byte(fallbackConfig), 0644); err != nil {
		t.Fatalf("failed to write fallback: %v", err)
	}

	configDir := filepath.Join(tmpHome, ".config", "smartcalc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	xdgConfig := "timezone: EST\n"
	xdgPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(xdgPath, []byte(xdgConfig), 0644); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	cfg, err := Reload()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timezone != "EST" {
		t.Errorf("expected XDG priority EST, got %s", cfg.Timezone)
	}
}
