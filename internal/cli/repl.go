package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
	"github.com/roach88/calc/internal/keymap"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Width int
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator session",
		Long: `Read lines of keys from standard input and print the screen after each line.

One engine serves the whole session, so state carries across lines.
"quit" or "exit" ends the session, as does end of input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", display.DefaultWidth, "panel width in text mode")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	if opts.Width < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid width %d: must be positive", opts.Width))
	}

	logger := opts.logger()
	out := opts.formatter(cmd)
	e := engine.New(engine.WithLogger(logger))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		ignored := press(e, logger, keymap.Tokenize([]string{line}))
		state := e.State()
		if err := out.Success(EvalResult{
			Screen:  display.Render(state),
			State:   state,
			Ignored: ignored,
			width:   opts.Width,
		}); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}
