package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chessctl-dev/chessctl/internal/cli/output"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
)

// NewSetOutputCmd creates the set-output command
func NewSetOutputCmd(env *Env) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "set-output [json|yaml|table]",
		Short: "Set the default response format",
		Long: `Set the response format used when -o is not given. The choice is saved in
the user config and applies to every later command.`,
		Example: `  $ chessctl set-output yaml
  $ chessctl set-output --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset == (len(args) == 1) {
				return fmt.Errorf("requires a format or --clear, not both")
			}
			var format string
			if len(args) == 1 {
				format = args[0]
			}
			return runSetOutput(env.out(), format)
		},
	}

	cmd.Flags().BoolVar(&reset, "clear", false, "Forget the saved format and fall back to json")
	return cmd
}

func runSetOutput(out io.Writer, format string) error {
	if err := userconfig.SetOutputFormat(format); err != nil {
		return err
	}

	if format == "" {
		fmt.Fprintf(out, "Default output format cleared (using %s)\n", output.FormatJSON)
		return nil
	}
	saved, err := userconfig.GetOutputFormat()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Default output format: %s\n", saved)
	return nil
}
