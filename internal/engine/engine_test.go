package engine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEngine_New(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, Initial(), e.State())
}

func TestEngine_WithState(t *testing.T) {
	start := State{Display: "4", PreviousValue: "6", Operator: OpMultiply, Expression: "6 ×"}
	e := New(WithState(start))

	e.Calculate()
	assert.Equal(t, "24", e.State().Display)
}

func TestEngine_ConvenienceMethods(t *testing.T) {
	e := New(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	e.InputDigit('1')
	e.InputDigit('2')
	e.InputDecimal()
	e.InputDigit('5')
	e.Backspace()
	e.Backspace()
	assert.Equal(t, "12", e.State().Display)

	e.ToggleSign()
	assert.Equal(t, "-12", e.State().Display)

	e.ApplyOperator(OpMultiply)
	e.InputDigit('3')
	e.Calculate()
	assert.Equal(t, "-36", e.State().Display)

	e.Percentage()
	assert.Equal(t, "-0.36", e.State().Display)

	e.ClearEntry()
	assert.Equal(t, "0", e.State().Display)

	e.InputDigit('9')
	e.ClearAll()
	assert.Equal(t, Initial(), e.State())
}

func TestEngine_ObserversSeeEveryTransitionInOrder(t *testing.T) {
	var first, second []Transition
	e := New(
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithObserver(func(tr Transition) { first = append(first, tr) }),
		WithObserver(func(tr Transition) { second = append(second, tr) }),
	)

	e.InputDigit('2')
	e.ApplyOperator(OpAdd)
	e.InputDigit('3')
	e.Calculate()

	require.Len(t, first, 4)
	assert.Equal(t, first, second)

	assert.Equal(t, Digit('2'), first[0].Action)
	assert.Equal(t, Initial(), first[0].Before)
	assert.Equal(t, "2", first[0].After.Display)

	for i := 1; i < len(first); i++ {
		assert.Equal(t, first[i-1].After, first[i].Before, "transition %d must start where %d ended", i, i-1)
	}
	assert.Equal(t, "5", first[3].After.Display)
	assert.NoError(t, first[3].Err)
}

func TestEngine_ErrorResetIsReportedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	var seen []Transition
	e := New(
		WithLogger(newTestLogger(&buf)),
		WithObserver(func(tr Transition) { seen = append(seen, tr) }),
	)

	e.InputDigit('5')
	e.ApplyOperator(OpDivide)
	e.InputDigit('0')
	tr := e.Dispatch(Simple(ActionCalculate))

	assert.True(t, IsDivisionByZero(tr.Err))
	assert.Equal(t, DisplayError, tr.After.Display)
	assert.Equal(t, DisplayError, e.State().Display)
	require.Len(t, seen, 4)
	assert.Equal(t, tr, seen[3])

	assert.Contains(t, buf.String(), "error reset")
	assert.Contains(t, buf.String(), "DIVISION_BY_ZERO")
}

func TestEngine_MalformedActionIgnored(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	e := New(
		WithLogger(newTestLogger(&buf)),
		WithObserver(func(Transition) { calls++ }),
	)
	e.InputDigit('7')

	tr := e.Dispatch(Action{Kind: ActionDigit, Arg: "seven"})

	assert.Equal(t, "7", e.State().Display)
	assert.Equal(t, tr.Before, tr.After)
	assert.NoError(t, tr.Err)
	assert.Equal(t, 1, calls, "ignored actions are not observed")
	assert.Contains(t, buf.String(), "action ignored")
}

func TestEngine_DebugLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithLogger(newTestLogger(&buf)))

	e.InputDigit('4')

	assert.Contains(t, buf.String(), "transition")
	assert.Contains(t, buf.String(), "action=digit(4)")
	assert.Contains(t, buf.String(), "display=4")
}
