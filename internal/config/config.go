// Package config loads runtime configuration from an optional YAML file
// and TUDU_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath               string `yaml:"db_path"`
	StoreKey             string `yaml:"store_key"`
	DefaultFilter        string `yaml:"default_filter"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
}

func Default() Config {
	return Config{
		DBPath:               DBPath(),
		StoreKey:             "tudu-tasks",
		DefaultFilter:        "all",
		DesktopNotifications: false,
	}
}

// LoadFile reads a YAML config file over base. A missing file is not an
// error; base is returned unchanged.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = base.DBPath
	}
	if strings.TrimSpace(cfg.StoreKey) == "" {
		cfg.StoreKey = base.StoreKey
	}
	if strings.TrimSpace(cfg.DefaultFilter) == "" {
		cfg.DefaultFilter = base.DefaultFilter
	}
	return cfg, nil
}

// FromEnv applies TUDU_* environment overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TUDU_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TUDU_STORE_KEY")); v != "" {
		cfg.StoreKey = v
	}
	if v := strings.TrimSpace(os.Getenv("TUDU_DEFAULT_FILTER")); v != "" {
		cfg.DefaultFilter = v
	}
	if v, ok := getEnvBool("TUDU_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

// Load resolves the effective configuration: defaults, then the YAML file
// at path (or the default location when path is empty), then env vars.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = ConfigPath()
	}
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return cfg, err
	}
	return FromEnv(cfg), nil
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
