package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCreateCmd creates the create command
func NewCreateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "create <game-name>",
		Short: "Create a new game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), env, strings.Join(args, " "))
		},
	}
}

func runCreate(ctx context.Context, env *Env, gameName string) error {
	gameName = strings.TrimSpace(gameName)
	if gameName == "" {
		return fmt.Errorf("game name is required")
	}

	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.CreateGame(ctx, env.token(), gameName)
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	fmt.Fprintf(env.out(), "✓ Created game '%s' (ID %d)\n", gameName, reply.Body.GameID)
	return nil
}
