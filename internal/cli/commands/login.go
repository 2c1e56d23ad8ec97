package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/client"
)

// NewLoginCmd creates the login command
func NewLoginCmd(env *Env) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a chess server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for environment variables (useful for CI/CD)
			if username == "" {
				username = os.Getenv("CHESSCTL_USERNAME")
			}
			if password == "" {
				password = os.Getenv("CHESSCTL_PASSWORD")
			}

			if username == "" {
				return fmt.Errorf("username is required (use --username flag or CHESSCTL_USERNAME env var)")
			}

			if password == "" {
				p, err := promptPassword(env.out(), "CHESSCTL_PASSWORD")
				if err != nil {
					return err
				}
				password = p
			}

			return runLogin(cmd.Context(), env, loginInput{Username: username, Password: password})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set CHESSCTL_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CHESSCTL_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, env *Env, in loginInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.Login(ctx, client.LoginRequest{Username: in.Username, Password: in.Password})
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	env.Username = reply.Body.Username
	fmt.Fprintf(env.out(), "✓ Logged in as %s\n", reply.Body.Username)
	return nil
}
