package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all games",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), env)
		},
	}
}

func runList(ctx context.Context, env *Env) error {
	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.ListGames(ctx, env.token())
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	out := env.out()
	games := reply.Body.Games
	env.Games = games
	if len(games) == 0 {
		fmt.Fprintln(out, "No games found.")
		fmt.Fprintln(out, "\nCreate a game with: chessctl create <game-name>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tWHITE\tBLACK")
	fmt.Fprintln(w, "─\t──\t────\t─────\t─────")

	for i, game := range games {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
			i+1,
			game.GameID,
			game.GameName,
			orDash(game.WhiteUsername),
			orDash(game.BlackUsername),
		)
	}

	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
