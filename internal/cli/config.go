package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/zkcircuit/leoparse/internal/diagnostics"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = ".leoparse.json"

// Config represents the leoparse configuration file.
type Config struct {
	Verbose bool   `json:"verbose"`
	Debug   bool   `json:"debug"`
	Color   string `json:"color"`

	// Workers bounds how many files are parsed at once.
	Workers int `json:"workers"`
	// ErrorLimit caps reported error diagnostics per file; 0 is unlimited.
	ErrorLimit int `json:"error_limit"`

	ServerAddr string `json:"server_addr"`
	CertFile   string `json:"cert_file,omitempty"`
	KeyFile    string `json:"key_file,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Color:      "auto",
		Workers:    runtime.NumCPU(),
		ServerAddr: "localhost:4433",
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// Validate checks field values that JSON decoding cannot.
func (c *Config) Validate() error {
	if _, err := diagnostics.ParseColorMode(c.Color); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.ErrorLimit < 0 {
		return fmt.Errorf("error_limit must not be negative, got %d", c.ErrorLimit)
	}
	return nil
}

// ColorMode returns the parsed colour setting.
func (c *Config) ColorMode() diagnostics.ColorMode {
	mode, _ := diagnostics.ParseColorMode(c.Color)
	return mode
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
