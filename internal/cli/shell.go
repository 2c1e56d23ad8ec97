package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/auth"
	"github.com/chessctl-dev/chessctl/internal/cli/commands"
	"github.com/chessctl-dev/chessctl/internal/cli/repl"
)

func newShellCmd(env *commands.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Every command of chessctl can be typed at
the prompt without the 'chessctl' prefix. The session token lives in memory
for the lifetime of the shell. join and observe take the game's number in
the last 'ls' output. Type 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := &commands.Env{
				Flags:       env.Flags,
				Out:         cmd.OutOrStdout(),
				Tokens:      auth.NewMemoryStore(),
				Interactive: true,
			}
			return runShell(cmd.Context(), session, os.Stdin, cmd.OutOrStdout())
		},
	}
}

// runShell reads commands from in until exit. All lines share session, so a
// login on one line authenticates the next.
func runShell(ctx context.Context, session *commands.Env, in io.Reader, out io.Writer) error {
	exec := func(ctx context.Context, args []string) error {
		sessionFlags := session.Flags
		lineFlags := *sessionFlags
		session.Flags = &lineFlags
		defer func() { session.Flags = sessionFlags }()

		rootCmd := NewRootCmd(session)
		rootCmd.SetArgs(args)
		rootCmd.SetIn(in)
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		return rootCmd.ExecuteContext(ctx)
	}

	prompt := func() string {
		if session.Username == "" {
			return "[LOGGED_OUT] >>> "
		}
		return "[" + session.Username + "] >>> "
	}

	r := repl.New(exec, repl.WithInput(in), repl.WithOutput(out), repl.WithPrompt(prompt))
	return r.Run(ctx)
}
