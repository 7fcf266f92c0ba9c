// Package config loads the smartcalc CLI's locale overrides from the
// embedded defaults plus optional user config files, merged in this
// order (later wins): embedded defaults, ~/.smartcalcrc.yaml, then
// ~/.config/smartcalc/config.yaml.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultsYAML string

// Config holds the locale overrides applied to a session's catalog before
// its first Execute call (spec.md §4.1 "Mutability: only via explicit
// builder before first execute").
type Config struct {
	Language          string `mapstructure:"language"`
	CatalogPath       string `mapstructure:"catalog_path"`
	DecimalSeparator  string `mapstructure:"decimal_separator"`
	ThousandSeparator string `mapstructure:"thousand_separator"`
	Timezone          string `mapstructure:"timezone"`
}

var (
	cfg     *Config
	once    sync.Once
	loadErr error
)

// Load initializes configuration from the embedded defaults and any user
// config file. Safe to call multiple times; only loads once.
func Load() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = load()
	})
	return cfg, loadErr
}

func load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(defaultsYAML)); err != nil {
		// An invalid embedded defaults file is a build-time error.
		panic("invalid embedded defaults.yaml: " + err.Error())
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		fallback := filepath.Join(home, ".smartcalcrc.yaml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			v.SetConfigFile(fallback)
			_ = v.MergeInConfig()
		}

		xdg := filepath.Join(home, ".config", "smartcalc", "config.yaml")
		if _, statErr := os.Stat(xdg); statErr == nil {
			v.SetConfigFile(xdg)
			_ = v.MergeInConfig()
		}
	}

	v.SetEnvPrefix("SMARTCALC")
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Reload forces a fresh load. Intended for tests only.
func Reload() (*Config, error) {
	once = sync.Once{}
	cfg = nil
	loadErr = nil
	return Load()
}
