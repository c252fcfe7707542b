package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds optional defaults loaded from the user's config file at
// $XDG_CONFIG_HOME/treeviz/config.toml (or ~/.config/treeviz/config.toml).
// All fields are optional; flags always win over config values.
type Config struct {
	Strategy string   `toml:"strategy"`
	Style    string   `toml:"style"`
	Formats  []string `toml:"formats"`
	CacheDir string   `toml:"cache_dir"`
	Listen   string   `toml:"listen"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig selects a Redis cache backend when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig selects a MongoDB snapshot store for the serve command when
// URI is set.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// LoadConfig reads the config file if present. A missing file is not an
// error; a malformed one is.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configPath returns the config file path using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
