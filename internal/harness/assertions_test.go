package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calc/internal/engine"
)

func sampleResult() *Result {
	r := NewResult("s")
	r.Trace = []TraceEvent{
		{Seq: 1, Kind: engine.ActionDigit, Arg: "6", Label: "digit(6)", Display: "6"},
		{Seq: 2, Kind: engine.ActionOperator, Arg: "÷", Label: "operator(÷)", Display: "6", Expression: "6 ÷"},
		{Seq: 3, Kind: engine.ActionDigit, Arg: "0", Label: "digit(0)", Display: "0", Expression: "6 ÷"},
		{Seq: 4, Kind: engine.ActionCalculate, Label: "calculate", Display: "Error", Fault: engine.ErrCodeDivisionByZero},
		{Seq: 5, Kind: engine.ActionDigit, Arg: "6", Label: "digit(6)", Display: "6"},
	}
	r.Faults = map[engine.ErrorCode]int{engine.ErrCodeDivisionByZero: 1}
	r.Final = engine.State{Display: "6"}
	return r
}

func TestAssertTraceContains(t *testing.T) {
	r := sampleResult()

	tests := []struct {
		name string
		a    Assertion
		ok   bool
	}{
		{"kind only", Assertion{Action: "calculate"}, true},
		{"kind and arg", Assertion{Action: "digit", Arg: "0"}, true},
		{"operator alias", Assertion{Action: "operator", Arg: "/"}, true},
		{"missing arg", Assertion{Action: "digit", Arg: "7"}, false},
		{"missing kind", Assertion{Action: "percentage"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTraceContains(r.Trace, tt.a)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAssertTraceCount(t *testing.T) {
	r := sampleResult()

	assert.NoError(t, assertTraceCount(r.Trace, Assertion{Action: "digit", Count: 3}))
	assert.NoError(t, assertTraceCount(r.Trace, Assertion{Action: "digit", Arg: "6", Count: 2}))
	assert.NoError(t, assertTraceCount(r.Trace, Assertion{Action: "backspace", Count: 0}))

	err := assertTraceCount(r.Trace, Assertion{Action: "digit", Count: 1})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceCount, ae.Type)
	assert.Equal(t, "found 3 times", ae.Actual)
}

func TestAssertFaultRaised(t *testing.T) {
	r := sampleResult()

	assert.NoError(t, assertFaultRaised(r, Assertion{Code: "DIVISION_BY_ZERO"}))
	assert.NoError(t, assertFaultRaised(r, Assertion{Code: "DIVISION_BY_ZERO", Count: 1}))
	assert.Error(t, assertFaultRaised(r, Assertion{Code: "DIVISION_BY_ZERO", Count: 2}))
	assert.Error(t, assertFaultRaised(r, Assertion{Code: "OVERFLOW"}))
}

func TestAssertFinalState(t *testing.T) {
	r := sampleResult()

	assert.NoError(t, assertFinalState(r, Assertion{Expect: &Expect{Display: strPtr("6")}}))

	err := assertFinalState(r, Assertion{Expect: &Expect{Display: strPtr("0"), Waiting: boolPtr(true)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `display: expected "0", got "6"`)
	assert.Contains(t, err.Error(), "waiting: expected true, got false")
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceContains,
		Expected: "action percentage",
		Actual:   "not found in trace",
		Trace:    sampleResult().Trace[:2],
	}

	msg := err.Error()
	assert.Contains(t, msg, "assertion failed: trace_contains")
	assert.Contains(t, msg, "[1] digit(6) -> 6")
	assert.Contains(t, msg, "[2] operator(÷) -> 6")
}

func TestEvaluateAssertion_UnknownType(t *testing.T) {
	err := evaluateAssertion(sampleResult(), Assertion{Type: "trace_order"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assertion type")
}
