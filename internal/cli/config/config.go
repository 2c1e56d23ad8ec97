package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

const ConfigFileName = "chessctl.json"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Server represents a chess server configuration
type Server struct {
	URL   string `json:"url" validate:"required,hostname_port|url"`
	Alias string `json:"alias" validate:"required,max=64"`
}

// Config represents the CLI configuration file
type Config struct {
	Servers []Server `json:"servers" validate:"unique=Alias,unique=URL,dive"`
}

// Validate checks a single server entry
func (s *Server) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("server URL is empty. Please edit %s and add a valid server URL", ConfigFileName)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid server '%s': %w", s.Alias, err)
	}
	return nil
}

// Validate checks every server entry and that aliases and URLs are unique
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return nil
}

// FindConfigFile searches for chessctl.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find chessctl.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AddServer appends a server unless one with the same URL exists.
// It reports whether the server was added.
func (c *Config) AddServer(url string) (*Server, bool) {
	for i := range c.Servers {
		if c.Servers[i].URL == url {
			return &c.Servers[i], false
		}
	}

	alias := "local"
	if len(c.Servers) > 0 {
		alias = fmt.Sprintf("server-%d", len(c.Servers)+1)
	}

	c.Servers = append(c.Servers, Server{URL: url, Alias: alias})
	return &c.Servers[len(c.Servers)-1], true
}

// GetServerByAlias returns a server by its alias
func (c *Config) GetServerByAlias(alias string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].Alias == alias {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with alias '%s' not found", alias)
}

// GetServerByURL returns a server by its URL
func (c *Config) GetServerByURL(url string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].URL == url {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server with URL '%s' not found in project config", url)
}

// GetDefaultServer returns the first server in the list
func (c *Config) GetDefaultServer() (*Server, error) {
	if len(c.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", ConfigFileName)
	}
	return &c.Servers[0], nil
}
