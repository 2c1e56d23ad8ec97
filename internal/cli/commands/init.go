package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "init <server-url>",
		Short: "Add a chess server to ./chessctl.json",
		Example: `  $ chessctl init localhost:8080
  $ chessctl init https://chess.example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(env.out(), args[0])
		},
	}
}

func runInit(out io.Writer, serverURL string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{Servers: []config.Server{}}
		isNewConfig = true
	}

	server, added := cfg.AddServer(serverURL)
	if !added {
		fmt.Fprintf(out, "Server %s already exists in %s\n", serverURL, config.ConfigFileName)
		return nil
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(out, "✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, server.URL, server.Alias)
	} else {
		fmt.Fprintf(out, "✓ Added server %s (%s) to ./%s\n", server.URL, server.Alias, config.ConfigFileName)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'chessctl register' to create an account")
	fmt.Fprintln(out, "  2. Or run 'chessctl login' if you already have one")

	return nil
}
