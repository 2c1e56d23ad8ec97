package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/client"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd(env *Env) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("CHESSCTL_PASSWORD")
			}
			if password == "" && username != "" {
				p, err := promptPassword(env.out(), "CHESSCTL_PASSWORD")
				if err != nil {
					return err
				}
				password = p
			}
			return runRegister(cmd.Context(), env, registerInput{Username: username, Password: password, Email: email})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CHESSCTL_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")

	return cmd
}

func runRegister(ctx context.Context, env *Env, in registerInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.Register(ctx, client.RegisterRequest{
		Username: in.Username,
		Password: in.Password,
		Email:    in.Email,
	})
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	env.Username = reply.Body.Username
	fmt.Fprintf(env.out(), "✓ Registered and logged in as %s\n", reply.Body.Username)
	return nil
}
