// Package harness runs calculator scenarios as executable contract tests.
//
// A scenario feeds key sequences to a fresh engine, checks the state after
// each step, evaluates assertions over the recorded transition trace, and
// can compare that trace against a golden file.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: chained_addition
//	description: "Operators chain left to right"
//	session: test-session-001
//	steps:
//	  - keys: "7 + 3"
//	    expect: { display: "3", expression: "7 +" }
//	  - keys: "+ 2 ="
//	    expect: { display: "12", waiting: true }
//	assertions:
//	  - type: trace_count
//	    action: operator
//	    count: 2
//	  - type: final_state
//	    expect: { shown: "12", operator: "" }
//
// Keys use the keymap vocabulary ("Enter", "Escape", "Backspace", "AC",
// "±", ...). Words that are not a named key are split into characters.
// Every file is checked against an embedded CUE schema before it is
// decoded, so typos and misplaced fields fail with a position.
//
// # Assertion Types
//
//   - final_state: the final engine state matches an expect block
//   - trace_contains: an action (optionally with arg) appears in the trace
//   - trace_count: an action appears exactly count times
//   - fault_raised: an Error Reset with the given code happened (count
//     times, when count is set)
//
// # Deterministic Testing
//
// Every run uses an in-memory journal, a DeterministicClock and a fixed
// session ID, so the same scenario produces a byte-identical trace.
// RunWithGolden compares that trace with testdata/scenarios/golden.
package harness
