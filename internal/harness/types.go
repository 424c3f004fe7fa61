package harness

import (
	"github.com/roach88/calc/internal/engine"
)

// TraceEvent is one journaled transition as seen by assertions and
// golden files.
type TraceEvent struct {
	Seq        int64             `json:"seq"`
	Kind       engine.ActionKind `json:"kind"`
	Arg        string            `json:"arg,omitempty"`
	Label      string            `json:"label"`
	Display    string            `json:"display"`
	Shown      string            `json:"shown"`
	Expression string            `json:"expression,omitempty"`
	Fault      engine.ErrorCode  `json:"fault,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	SessionID string `json:"session_id"`

	// Trace is read back from the journal, ordered by seq.
	Trace []TraceEvent `json:"trace"`

	Final engine.State `json:"final"`

	// Faults counts Error Resets by code.
	Faults map[engine.ErrorCode]int `json:"faults,omitempty"`

	// Ignored lists keys with no binding, in input order.
	Ignored []string `json:"ignored,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for a session.
func NewResult(sessionID string) *Result {
	return &Result{
		Pass:      true,
		SessionID: sessionID,
		Trace:     []TraceEvent{},
		Faults:    map[engine.ErrorCode]int{},
		Errors:    []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
