// Package config loads the optional YAML configuration of the command line tools.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "LIBWORLD_CONFIG"

type Config struct {
	// Definitions is the directory with the definition catalogs.
	Definitions string `yaml:"definitions"`
	// Schema is a JSON header schema replacing the built-in one.
	Schema string `yaml:"schema"`
	// Player is a player file whose map reveals explored tiles.
	Player    string `yaml:"player"`
	Seed      uint64 `yaml:"seed"`
	ChunkSize int    `yaml:"chunk_size"`
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
}

// Load reads the config at path, or at $LIBWORLD_CONFIG when path is empty.
// Without either it returns an empty config.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// Level parses LogLevel, defaulting to warn.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: bad log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
