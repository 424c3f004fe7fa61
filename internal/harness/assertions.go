package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/calc/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nfull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s -> %s\n", ev.Seq, ev.Label, ev.Display)
		}
	}

	return buf.String()
}

func evaluateAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case AssertFinalState:
		return assertFinalState(r, a)
	case AssertTraceContains:
		return assertTraceContains(r.Trace, a)
	case AssertTraceCount:
		return assertTraceCount(r.Trace, a)
	case AssertFaultRaised:
		return assertFaultRaised(r, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFinalState(r *Result, a Assertion) error {
	diffs := a.Expect.Diff(r.Final)
	if len(diffs) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: "final state to match",
		Actual:   strings.Join(diffs, "; "),
		Trace:    r.Trace,
	}
}

func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if matchEvent(ev, a) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describe(a),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if matchEvent(ev, a) {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s exactly %d times", describe(a), a.Count),
		Actual:   fmt.Sprintf("found %d times", count),
		Trace:    trace,
	}
}

func assertFaultRaised(r *Result, a Assertion) error {
	got := r.Faults[engine.ErrorCode(a.Code)]
	if a.Count == 0 && got > 0 || a.Count > 0 && got == a.Count {
		return nil
	}

	want := "at least once"
	if a.Count > 0 {
		want = fmt.Sprintf("exactly %d times", a.Count)
	}
	return &AssertionError{
		Type:     AssertFaultRaised,
		Expected: fmt.Sprintf("fault %s %s", a.Code, want),
		Actual:   fmt.Sprintf("raised %d times", got),
		Trace:    r.Trace,
	}
}

// matchEvent compares kind and, when given, the argument.
// Operator arguments are normalized, so "*" matches "×".
func matchEvent(ev TraceEvent, a Assertion) bool {
	if string(ev.Kind) != a.Action {
		return false
	}
	if a.Arg == "" {
		return true
	}
	if ev.Kind == engine.ActionOperator {
		if op, err := engine.ParseOperator(a.Arg); err == nil {
			return string(op) == ev.Arg
		}
	}
	return a.Arg == ev.Arg
}

func describe(a Assertion) string {
	if a.Arg == "" {
		return fmt.Sprintf("action %s", a.Action)
	}
	return fmt.Sprintf("action %s(%s)", a.Action, a.Arg)
}
