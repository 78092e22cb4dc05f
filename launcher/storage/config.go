package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the launcher configuration stored in xdash.config.toml.
type Config struct {
	Netplay        bool   `toml:"netplay"`         // Launch the netplay build of the emulator
	DefaultROM     string `toml:"default_rom"`     // Catalog entry selected at startup
	ControllerType string `toml:"controller_type"` // "any", "xinput", or "sdl"
}

// configFile is the on-disk shape: settings live under a [Config] table.
type configFile struct {
	Config Config `toml:"Config"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Netplay:        false,
		DefaultROM:     "",
		ControllerType: "any",
	}
}

// LoadConfig loads the configuration from path.
// A missing file is created with defaults. A corrupted file returns
// defaults along with the parse error so the caller can warn without
// losing the ability to run.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveConfig(path, cfg); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	var file configFile
	file.Config = *DefaultConfig()
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := file.Config
	if !validControllerType(cfg.ControllerType) {
		cfg.ControllerType = "any"
	}
	return &cfg, nil
}

// SaveConfig writes the configuration to path atomically.
func SaveConfig(path string, cfg *Config) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".xdash-config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()

	enc := toml.NewEncoder(tmp)
	if err := enc.Encode(configFile{Config: *cfg}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

func validControllerType(t string) bool {
	switch t {
	case "any", "xinput", "sdl":
		return true
	}
	return false
}
