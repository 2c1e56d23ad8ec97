package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/commands"
	appconfig "github.com/chessctl-dev/chessctl/internal/config"
	"github.com/chessctl-dev/chessctl/internal/logger"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree around env. Persistent flags write to
// env.Flags and default to its current values.
func NewRootCmd(env *commands.Env) *cobra.Command {
	if env.Flags == nil {
		env.Flags = &commands.GlobalFlags{}
	}
	flags := env.Flags

	rootCmd := &cobra.Command{
		Use:   "chessctl",
		Short: "chessctl - command line client for the chess game server",
		Long: `chessctl talks to a chess game server: register or log in, then list,
create, join and observe games. The session token issued at login is kept
and sent with every later request.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.Server, "server", flags.Server, "Server alias (uses the selected server if not specified)")
	rootCmd.PersistentFlags().StringVar(&flags.Token, "token", flags.Token, "Session token to send instead of the stored one")
	rootCmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", flags.Output, "Response format: json, yaml or table (default from user config, else json)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chessctl version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewInitCmd(env))
	rootCmd.AddCommand(commands.NewSelectServerCmd(env))
	rootCmd.AddCommand(commands.NewSetOutputCmd(env))
	rootCmd.AddCommand(commands.NewRegisterCmd(env))
	rootCmd.AddCommand(commands.NewLoginCmd(env))
	rootCmd.AddCommand(commands.NewLogoutCmd(env))
	rootCmd.AddCommand(commands.NewListCmd(env))
	rootCmd.AddCommand(commands.NewCreateCmd(env))
	rootCmd.AddCommand(commands.NewJoinCmd(env))
	rootCmd.AddCommand(commands.NewObserveCmd(env))
	rootCmd.AddCommand(commands.NewClearDBCmd(env))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	env := commands.NewEnv(&commands.GlobalFlags{})
	rootCmd := NewRootCmd(env)
	rootCmd.AddCommand(newShellCmd(env))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
