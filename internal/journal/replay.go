package journal

import (
	"context"
	"fmt"

	"github.com/roach88/calc/internal/engine"
)

// Divergence is a recorded transition that replay could not reproduce.
type Divergence struct {
	Seq      int64            `json:"seq"`
	Action   engine.Action    `json:"action"`
	Recorded engine.State     `json:"recorded"`
	Replayed engine.State     `json:"replayed"`
	Fault    engine.ErrorCode `json:"fault,omitempty"`
	Got      engine.ErrorCode `json:"got,omitempty"`
}

// ReplayReport is the outcome of re-running a session.
type ReplayReport struct {
	SessionID   string       `json:"session_id"`
	Replayed    int          `json:"replayed"`
	Final       engine.State `json:"final"`
	Divergences []Divergence `json:"divergences,omitempty"`
}

// Deterministic reports whether every transition was reproduced.
func (r *ReplayReport) Deterministic() bool {
	return len(r.Divergences) == 0
}

// Replay re-applies every recorded action of a session with engine.Apply,
// starting from the first entry's before state, and compares each result
// with what was recorded.
//
// Replay continues from the recorded state after a divergence so one bad
// transition is reported once. A session with no transitions replays to
// the initial state.
func (j *Journal) Replay(ctx context.Context, sessionID string) (*ReplayReport, error) {
	entries, err := j.Entries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", sessionID, err)
	}

	report := &ReplayReport{SessionID: sessionID, Final: engine.Initial()}
	if len(entries) == 0 {
		return report, nil
	}

	state := entries[0].Before
	for _, e := range entries {
		if state != e.Before {
			return nil, fmt.Errorf("replay %s: gap before seq %d", sessionID, e.Seq)
		}

		next, err := engine.Apply(state, e.Action)
		got := engine.CodeOf(err)
		if next != e.After || got != e.Fault {
			report.Divergences = append(report.Divergences, Divergence{
				Seq:      e.Seq,
				Action:   e.Action,
				Recorded: e.After,
				Replayed: next,
				Fault:    e.Fault,
				Got:      got,
			})
		}

		state = e.After
		report.Replayed++
	}

	report.Final = state
	return report, nil
}
