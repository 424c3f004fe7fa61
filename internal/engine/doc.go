// Package engine implements the calculator's input state machine.
//
// The engine owns a single State record and mutates it in response to
// keypad actions: digit entry, decimal point, backspace, sign toggle,
// percentage, clears, binary operators and "=".
//
// ARCHITECTURE:
//
// Pure Transitions:
// Apply(state, action) is the only transition function. Every operation
// returns a new State and never fails: arithmetic failures are recovered
// in place by the Error Reset, which replaces the display with a sentinel
// ("Error" or "Overflow") and clears the pending operation.
//
// Single Owner:
// Engine wraps one State for a host (CLI, REPL, test harness). It is not
// safe for concurrent use; each host serializes its own input events.
//
// Numeric Model:
// Operands are kept as their display text and parsed into apd decimals
// when an operator or "=" needs them. Results are rounded to 12
// significant digits and rendered in plain decimal notation. A rendered
// result with more than 12 digits is an overflow.
//
// State machine:
//
//	Idle      no pending operator
//	PendingOp operator captured, waiting for or editing the second operand
//	Error     display holds a sentinel; the next digit starts fresh
//
// ApplyOperator and Calculate are the only transitions that touch the
// pending operation and the only ones (with Percentage) that can enter
// Error. ClearAll returns to Idle from any state.
package engine
