package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
	"github.com/roach88/calc/internal/journal"
	"github.com/roach88/calc/internal/keymap"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Session string // fixed session ID; a UUIDv7 when empty
	Verify  bool   // replay the journal and report divergences
}

// TraceEvent is one journaled transition in the timeline.
type TraceEvent struct {
	Seq        int64            `json:"seq"`
	Action     string           `json:"action"`
	Display    string           `json:"display"`
	Shown      string           `json:"shown"`
	Expression string           `json:"expression,omitempty"`
	Fault      engine.ErrorCode `json:"fault,omitempty"`
}

// TraceResult is the output of the trace command.
type TraceResult struct {
	SessionID string                   `json:"session_id"`
	Events    []TraceEvent             `json:"events"`
	Faults    map[engine.ErrorCode]int `json:"faults,omitempty"`
	Final     display.Screen           `json:"final"`
	Ignored   []string                 `json:"ignored,omitempty"`
	Replay    *journal.ReplayReport    `json:"replay,omitempty"`
}

// RenderText prints the timeline.
func (r TraceResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "Trace for Session: %s\n", r.SessionID)
	fmt.Fprintf(w, "Transitions: %d\n\n", len(r.Events))

	for _, ev := range r.Events {
		fmt.Fprintf(w, "  [%d] %s -> %s\n", ev.Seq, ev.Action, ev.Shown)
		if ev.Expression != "" {
			fmt.Fprintf(w, "       Expression: %s\n", ev.Expression)
		}
		if ev.Fault != "" {
			fmt.Fprintf(w, "       Fault: %s\n", ev.Fault)
		}
	}

	if len(r.Faults) > 0 {
		codes := make([]string, 0, len(r.Faults))
		for code := range r.Faults {
			codes = append(codes, string(code))
		}
		sort.Strings(codes)

		fmt.Fprintf(w, "\nFaults:\n")
		for _, code := range codes {
			fmt.Fprintf(w, "  %s: %d\n", code, r.Faults[engine.ErrorCode(code)])
		}
	}

	if r.Replay != nil {
		if r.Replay.Deterministic() {
			fmt.Fprintf(w, "\nReplay: %d transitions reproduced\n", r.Replay.Replayed)
		} else {
			fmt.Fprintf(w, "\nReplay: %d divergence(s)\n", len(r.Replay.Divergences))
			for _, d := range r.Replay.Divergences {
				fmt.Fprintf(w, "  [%d] %s recorded %s, replayed %s\n", d.Seq, d.Action, d.Recorded.Display, d.Replayed.Display)
			}
		}
	}

	fmt.Fprintf(w, "\nFinal:\n%s", r.Final.Text(display.DefaultWidth))
	return nil
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <keys...>",
		Short: "Press keys and print the transition timeline",
		Long: `Run a key sequence with an in-memory journal and print every transition.

Each line shows the action and the display after it; Error Resets are
marked with their fault code. The journal is discarded when the command exits.

Examples:
  calc trace 7 + 3 + 2 =
  calc trace 5 / 0 = --session demo
  calc trace 9 x 9 = --format json
  calc trace 1 + 2 = --verify`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "fixed session ID (default: generated UUIDv7)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "replay the journal and check every transition is reproduced")

	return cmd
}

// staticID is a SessionIDGenerator for a user-chosen session ID.
type staticID string

func (s staticID) Generate() string { return string(s) }

func runTrace(opts *TraceOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()
	logger := opts.logger()

	j, err := journal.OpenMemory()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			logger.Error("error closing journal", "error", closeErr)
		}
	}()

	var gen journal.SessionIDGenerator = journal.UUIDv7Generator{}
	if opts.Session != "" {
		gen = staticID(opts.Session)
	}

	sess, err := j.NewSession(ctx, gen, journal.NewClock())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start session", err)
	}
	sess.SetLogger(logger)

	e := engine.New(engine.WithLogger(logger), engine.WithObserver(sess.Observer(ctx)))
	ignored := press(e, logger, keymap.Tokenize(args))

	entries, err := j.Entries(ctx, sess.ID())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	faults, err := j.FaultCounts(ctx, sess.ID())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	result := TraceResult{
		SessionID: sess.ID(),
		Events:    make([]TraceEvent, 0, len(entries)),
		Faults:    faults,
		Final:     display.Render(e.State()),
		Ignored:   ignored,
	}
	for _, entry := range entries {
		result.Events = append(result.Events, TraceEvent{
			Seq:        entry.Seq,
			Action:     entry.Action.String(),
			Display:    entry.After.Display,
			Shown:      display.FormatForDisplay(entry.After.Display),
			Expression: entry.After.Expression,
			Fault:      entry.Fault,
		})
	}

	if opts.Verify {
		report, err := j.Replay(ctx, sess.ID())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to replay journal", err)
		}
		result.Replay = report
	}

	if err := opts.formatter(cmd).Success(result); err != nil {
		return err
	}
	if result.Replay != nil && !result.Replay.Deterministic() {
		return NewExitError(ExitFailure, fmt.Sprintf("replay diverged at %d transition(s)", len(result.Replay.Divergences)))
	}
	return nil
}
