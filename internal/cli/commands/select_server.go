package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/config"
	"github.com/chessctl-dev/chessctl/internal/cli/serverselect"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
)

// NewSelectServerCmd creates the select-server command
func NewSelectServerCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-server [url-or-alias]",
		Short: "Select the server to use for commands",
		Long: `Select the server to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ chessctl select-server                 # Interactive selection
  $ chessctl select-server localhost:8080  # Select by URL
  $ chessctl select-server local           # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			if err := runSelectServer(env.out(), urlOrAlias); err != nil {
				return err
			}
			// Later shell lines resolve the new selection; old game numbers no longer apply
			env.Server = nil
			env.Games = nil
			return nil
		},
	}

	return cmd
}

func runSelectServer(out io.Writer, urlOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'chessctl init <server-url>' to create a configuration file", err)
	}

	var server *config.Server

	if urlOrAlias != "" {
		server, err = serverselect.GetServerByURLOrAlias(cfg, urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		server, err = serverselect.PromptServerSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedServer(server.URL); err != nil {
		return fmt.Errorf("failed to save selected server: %w", err)
	}

	fmt.Fprintf(out, "Selected server: %s (%s)\n", server.Alias, server.URL)
	return nil
}
