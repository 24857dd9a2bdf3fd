package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds everything the panel persists between runs: the serial
// settings and the last instrument/subcommand/parameter selection.
type Config struct {
	Serial    SerialConfig    `json:"serial"`
	Selection SelectionConfig `json:"selection"`
	LogLevel  string          `json:"log_level"`
}

// SerialConfig is the configured port and baud rate.
type SerialConfig struct {
	Port string `json:"port"`
	Baud int    `json:"baud"`
}

// SelectionConfig is the instrument/subcommand choice and the raw parameter
// values as last entered. Params is keyed by parameter name.
type SelectionConfig struct {
	Instrument string            `json:"instrument"`
	Subcommand string            `json:"subcommand"`
	Params     map[string]string `json:"params"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "",
			Baud: 115200,
		},
		Selection: SelectionConfig{
			Params: map[string]string{},
		},
		LogLevel: "INFO",
	}
}

// Load reads the config file from beside the executable.
func Load() (*Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Selection.Params == nil {
		cfg.Selection.Params = map[string]string{}
	}

	return &cfg, nil
}

// Save writes the config file beside the executable.
func (c *Config) Save() error {
	return c.SaveTo(getConfigPath())
}

// SaveTo writes the config to an explicit path, creating the directory if
// needed.
func (c *Config) SaveTo(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func getConfigPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeDir := filepath.Dir(exePath)
	return filepath.Join(exeDir, "config.json")
}
