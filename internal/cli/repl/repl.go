// Package repl provides the interactive shell mode for chessctl.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnterminatedQuote is returned by SplitArgs for an unbalanced quote
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Executor runs one parsed command line
type Executor func(ctx context.Context, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input   io.Reader
	output  io.Writer
	exec    Executor
	prompt  func() string
	history *History
}

// Option configures a REPL
type Option func(*REPL)

// WithInput sets the input reader
func WithInput(r io.Reader) Option {
	return func(repl *REPL) {
		repl.input = r
	}
}

// WithOutput sets the output writer
func WithOutput(w io.Writer) Option {
	return func(repl *REPL) {
		repl.output = w
	}
}

// WithPrompt sets the function that renders the prompt before each line
func WithPrompt(prompt func() string) Option {
	return func(repl *REPL) {
		repl.prompt = prompt
	}
}

// New creates a new REPL instance.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		input:   os.Stdin,
		output:  os.Stdout,
		exec:    exec,
		prompt:  func() string { return ">>> " },
		history: NewHistory(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		atEOF := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if atEOF {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "history":
			r.history.Print(r.output)
		default:
			if err := r.execute(ctx, line); err != nil {
				fmt.Fprintf(r.output, "Error: %v\n", err)
			}
		}

		if atEOF {
			return nil
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := SplitArgs(line)
	if err != nil {
		return err
	}
	return r.exec(ctx, args)
}

// SplitArgs splits a command line on whitespace. Single or double quotes
// group words into one argument.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inArg = true
		case c == ' ' || c == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(c)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
