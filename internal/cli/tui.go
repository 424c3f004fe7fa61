package cli

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/tui"
)

// TUIOptions holds flags for the tui command.
type TUIOptions struct {
	*RootOptions
	Width int
}

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TUIOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen keypad calculator",
		Long: `Open the calculator as a full-screen keypad in the terminal.

Type keys as in eval; "x" multiplies, "n" toggles the sign and "c" is the
smart clear. Press "?" for the key list and "q" to quit. Error Resets are
shown under the keypad instead of being logged.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", display.DefaultWidth, "display panel width")

	return cmd
}

func runTUI(opts *TUIOptions, cmd *cobra.Command) error {
	if opts.Width < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid width %d: must be positive", opts.Width))
	}

	// stderr shares the terminal with the alternate screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := tea.NewProgram(
		tui.New(logger, tui.WithWidth(opts.Width)),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitCommandError, "terminal session failed", err)
	}
	return nil
}
