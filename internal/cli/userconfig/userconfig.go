// Package userconfig holds per-user chessctl settings that apply across
// projects: the selected server and the preferred response format.
package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chessctl-dev/chessctl/internal/cli/output"
)

const (
	configDirName  = "chessctl"
	configFileName = "config.json"
)

// UserConfig is stored in ~/.config/chessctl/config.json
type UserConfig struct {
	SelectedServerURL string `json:"selected_server_url"`
	OutputFormat      string `json:"output_format,omitempty"`
}

// Validate checks the stored output format, if any
func (c *UserConfig) Validate() error {
	if c.OutputFormat == "" {
		return nil
	}
	if _, err := output.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("invalid user config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, configFileName), nil
}

// Load reads the user config. A missing file is an empty config.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}
	return &cfg, nil
}

// Save validates cfg and replaces the user config file
func Save(cfg *UserConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp := configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	if err := os.Rename(tmp, configPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	return nil
}

func update(fn func(*UserConfig)) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	fn(cfg)
	return Save(cfg)
}

// SetSelectedServer records the server commands use by default; "" clears it
func SetSelectedServer(serverURL string) error {
	return update(func(cfg *UserConfig) {
		cfg.SelectedServerURL = serverURL
	})
}

// GetSelectedServer returns the selected server URL, or "" if not set
func GetSelectedServer() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.SelectedServerURL, nil
}

// SetOutputFormat records the default response format; "" clears it
func SetOutputFormat(format string) error {
	if format != "" {
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		format = string(f)
	}
	return update(func(cfg *UserConfig) {
		cfg.OutputFormat = format
	})
}

// GetOutputFormat returns the default response format, or "" if not set
func GetOutputFormat() (output.Format, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	if cfg.OutputFormat == "" {
		return "", nil
	}
	return output.ParseFormat(cfg.OutputFormat)
}
