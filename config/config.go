package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persisted tool configuration.
type Config struct {
	// DeviceName is the MIDI port name the launchpad registers under.
	DeviceName string `json:"deviceName,omitempty"`

	// UseDefaultPorts allows falling back to the platform default
	// ports when DeviceName resolves to nothing. Off by default; the
	// library itself never guesses a device.
	UseDefaultPorts bool `json:"useDefaultPorts,omitempty"`

	// APIPort is where `lpctl serve` listens.
	APIPort int `json:"apiPort,omitempty"`

	// PollIntervalMs is the monitor's input poll cadence.
	PollIntervalMs int `json:"pollIntervalMs,omitempty"`

	// GridMode is the layout selected on connect: "xy" or "drumrack".
	GridMode string `json:"gridMode,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DeviceName:     "Launchpad Mini",
		APIPort:        8080,
		PollIntervalMs: 15,
		GridMode:       "xy",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lpctl"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
