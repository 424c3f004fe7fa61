package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
	"github.com/roach88/calc/internal/keymap"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Width int
}

// EvalResult is the screen after a run of keys.
type EvalResult struct {
	Screen  display.Screen `json:"screen"`
	State   engine.State   `json:"state"`
	Ignored []string       `json:"ignored,omitempty"`

	width int
}

// RenderText draws the screen panel.
func (r EvalResult) RenderText(w io.Writer) error {
	_, err := io.WriteString(w, r.Screen.Text(r.width))
	return err
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <keys...>",
		Short: "Press keys and print the display",
		Long: `Feed a key sequence to a fresh calculator and print the final screen.

Words that name a key ("Enter", "Escape", "AC", "±") are pressed as one key;
anything else is split into single characters. Unbound keys are ignored.

Examples:
  calc eval 12+3=
  calc eval 7 + 3 + 2 Enter
  calc eval 5 / 0 = --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", display.DefaultWidth, "panel width in text mode")

	return cmd
}

func runEval(opts *EvalOptions, args []string, cmd *cobra.Command) error {
	if opts.Width < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid width %d: must be positive", opts.Width))
	}

	logger := opts.logger()
	e := engine.New(engine.WithLogger(logger))
	ignored := press(e, logger, keymap.Tokenize(args))

	state := e.State()
	return opts.formatter(cmd).Success(EvalResult{
		Screen:  display.Render(state),
		State:   state,
		Ignored: ignored,
		width:   opts.Width,
	})
}

// press dispatches every bound key and returns the unbound ones.
func press(e *engine.Engine, logger *slog.Logger, keys []string) []string {
	var ignored []string
	for _, key := range keys {
		a, ok := keymap.Lookup(key)
		if !ok {
			logger.Debug("key ignored", "key", key)
			ignored = append(ignored, key)
			continue
		}
		e.Dispatch(a)
	}
	return ignored
}
