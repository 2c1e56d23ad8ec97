package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), env)
		},
	}
}

// runLogout forgets the local session even when the server call fails
func runLogout(ctx context.Context, env *Env) error {
	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.Logout(ctx, env.token())
	env.Username = ""
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Fprintln(env.out(), "✓ Logged out")
	return nil
}
