package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/client"
	"github.com/chessctl-dev/chessctl/internal/cli/output"
	"github.com/chessctl-dev/chessctl/internal/logger"
)

// NewJoinCmd creates the join command
func NewJoinCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "join <game> <WHITE|BLACK>",
		Short: "Join a game as a player",
		Long: `Join a game as a player. <game> is the server game ID; in the shell it is
the game's number in the last 'ls' output.`,
		Example: `  $ chessctl join 1 WHITE
  $ chessctl join 2 black`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := env.resolveGame(args[0])
			if err != nil {
				return err
			}
			color, err := parsePlayerColor(args[1])
			if err != nil {
				return err
			}
			return runJoin(cmd.Context(), env, game, color)
		},
	}
}

// NewObserveCmd creates the observe command
func NewObserveCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "observe <game>",
		Short: "Watch a game without taking a color",
		Long: `Watch a game without taking a color. <game> is the server game ID; in the
shell it is the game's number in the last 'ls' output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := env.resolveGame(args[0])
			if err != nil {
				return err
			}
			return runObserve(cmd.Context(), env, game)
		},
	}
}

func runJoin(ctx context.Context, env *Env, game client.Game, color string) error {
	api, err := env.apiClient()
	if err != nil {
		return err
	}

	req := client.JoinGameRequest{PlayerColor: color, GameID: game.GameID}
	reply, err := api.JoinGame(ctx, env.token(), req)
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("failed to join game %d: %w", game.GameID, err)
	}

	fmt.Fprintf(env.out(), "✓ Joined game %s as %s\n", gameLabel(game), color)
	env.drawBoard(game, color != client.ColorBlack)
	return nil
}

func runObserve(ctx context.Context, env *Env, game client.Game) error {
	api, err := env.apiClient()
	if err != nil {
		return err
	}

	reply, err := api.ObserveGame(ctx, env.token(), game.GameID)
	if err := finish(reply, err); err != nil {
		return fmt.Errorf("failed to observe game %d: %w", game.GameID, err)
	}

	fmt.Fprintf(env.out(), "✓ Observing game %s\n", gameLabel(game))
	env.drawBoard(game, true)
	return nil
}

func gameLabel(game client.Game) string {
	if game.GameName == "" {
		return fmt.Sprintf("%d", game.GameID)
	}
	return fmt.Sprintf("'%s' (ID %d)", game.GameName, game.GameID)
}

// drawBoard prints the board of a listed game. Games without state, such as
// those named by ID outside the shell, print nothing.
func (e *Env) drawBoard(game client.Game, whiteOnBottom bool) {
	if len(game.Game) == 0 {
		return
	}

	log := logger.GetLogger()
	board, err := output.DecodeBoard(game.Game)
	if err != nil {
		log.Debug().Err(err).Int("game_id", game.GameID).Msg("Skipping board")
		return
	}

	fmt.Fprintln(e.out())
	if err := board.Render(e.out(), whiteOnBottom); err != nil {
		log.Debug().Err(err).Msg("Failed to render board")
	}
}
