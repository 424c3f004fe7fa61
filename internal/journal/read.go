package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/calc/internal/engine"
)

// Entry is one recorded transition.
type Entry struct {
	SessionID string           `json:"session_id"`
	Seq       int64            `json:"seq"`
	Action    engine.Action    `json:"action"`
	Before    engine.State     `json:"before"`
	After     engine.State     `json:"after"`
	Fault     engine.ErrorCode `json:"fault,omitempty"`
}

// Entries returns every transition of a session ordered by seq.
// Returns an empty slice (not nil) for an unknown or idle session.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id, seq, action_kind, action_arg, before_state, after_state, fault
		FROM transitions
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e             Entry
			kind, fault   string
			before, after string
		)
		if err := rows.Scan(&e.SessionID, &e.Seq, &kind, &e.Action.Arg, &before, &after, &fault); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		e.Action.Kind = engine.ActionKind(kind)
		e.Fault = engine.ErrorCode(fault)

		if err := json.Unmarshal([]byte(before), &e.Before); err != nil {
			return nil, fmt.Errorf("unmarshal before state at seq %d: %w", e.Seq, err)
		}
		if err := json.Unmarshal([]byte(after), &e.After); err != nil {
			return nil, fmt.Errorf("unmarshal after state at seq %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}

	return entries, nil
}

// FaultCounts returns how many Error Resets of each kind a session hit.
func (j *Journal) FaultCounts(ctx context.Context, sessionID string) (map[engine.ErrorCode]int, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT fault, COUNT(*)
		FROM transitions
		WHERE session_id = ? AND fault != ''
		GROUP BY fault
		ORDER BY fault ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query faults: %w", err)
	}
	defer rows.Close()

	counts := make(map[engine.ErrorCode]int)
	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan fault count: %w", err)
		}
		counts[engine.ErrorCode(code)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faults: %w", err)
	}

	return counts, nil
}

// Sessions returns all session IDs in registration order.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return ids, nil
}
