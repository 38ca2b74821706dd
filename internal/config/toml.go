// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Runtime RuntimeConfig `toml:"runtime"`
	History HistoryConfig `toml:"history"`
}

// RuntimeConfig maps settings for programs hosted by the CLI.
type RuntimeConfig struct {
	TimerCapacity *int `toml:"timer-capacity"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	DBPath *string `toml:"db"`
	Record *bool   `toml:"record"`
	Last   *int    `toml:"last"`
	Top    *int    `toml:"top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
