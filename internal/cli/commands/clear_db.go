package commands

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// NewClearDBCmd creates the clear-db command
func NewClearDBCmd(env *Env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-db",
		Short: "Delete all users, sessions and games on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				prompt := promptui.Prompt{
					Label:     "This wipes every user and game on the server. Continue",
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					return fmt.Errorf("clear-db cancelled")
				}
			}
			return runClearDB(cmd.Context(), env)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClearDB(ctx context.Context, env *Env) error {
	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.ClearDatabase(ctx)
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}

	fmt.Fprintln(env.out(), "✓ Database cleared")
	return nil
}
