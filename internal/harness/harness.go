package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
	"github.com/roach88/calc/internal/journal"
	"github.com/roach88/calc/internal/keymap"
	"github.com/roach88/calc/internal/testutil"
)

// Harness holds the per-run wiring for one scenario.
type Harness struct {
	journal *journal.Journal
	session *journal.Session
	engine  *engine.Engine
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
}

// Run executes a scenario and returns its result.
//
// Each run gets a fresh in-memory journal, a DeterministicClock and a
// fixed session ID. Failed expectations and assertions are collected in
// the result; the error return is reserved for wiring failures.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	j, err := journal.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	clock := testutil.NewDeterministicClock()
	sess, err := j.NewSession(ctx, testutil.NewFixedSessionGenerator(scenario.Session), clock)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess.SetLogger(logger)

	h := &Harness{
		journal: j,
		session: sess,
		clock:   clock,
		logger:  logger,
		engine: engine.New(
			engine.WithLogger(logger),
			engine.WithObserver(sess.Observer(ctx)),
		),
	}

	result := NewResult(sess.ID())

	for i, step := range scenario.Steps {
		result.Ignored = append(result.Ignored, h.press(step.Keys)...)
		for _, d := range step.Expect.Diff(h.engine.State()) {
			result.AddError(fmt.Sprintf("steps[%d] %q: %s", i, step.Keys, d))
		}
	}

	if err := h.collect(ctx, result); err != nil {
		return nil, err
	}

	for i, a := range scenario.Assertions {
		if err := evaluateAssertion(result, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

// press feeds a key sequence to the engine and returns the unbound keys.
func (h *Harness) press(keys string) []string {
	var ignored []string
	for _, key := range keymap.Tokenize([]string{keys}) {
		a, ok := keymap.Lookup(key)
		if !ok {
			h.logger.Debug("key ignored", "key", key)
			ignored = append(ignored, key)
			continue
		}
		h.engine.Dispatch(a)
	}
	return ignored
}

// collect reads the trace and fault counts back from the journal.
func (h *Harness) collect(ctx context.Context, result *Result) error {
	entries, err := h.journal.Entries(ctx, h.session.ID())
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}
	if int64(len(entries)) != h.clock.Current() {
		return fmt.Errorf("journal holds %d transitions, engine produced %d", len(entries), h.clock.Current())
	}

	for _, e := range entries {
		result.Trace = append(result.Trace, TraceEvent{
			Seq:        e.Seq,
			Kind:       e.Action.Kind,
			Arg:        e.Action.Arg,
			Label:      e.Action.String(),
			Display:    e.After.Display,
			Shown:      display.FormatForDisplay(e.After.Display),
			Expression: e.After.Expression,
			Fault:      e.Fault,
		})
	}

	faults, err := h.journal.FaultCounts(ctx, h.session.ID())
	if err != nil {
		return fmt.Errorf("failed to read faults: %w", err)
	}
	result.Faults = faults
	result.Final = h.engine.State()
	return nil
}
