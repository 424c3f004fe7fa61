package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/calc/internal/engine"
)

// Session ties one engine to its rows in the journal.
type Session struct {
	journal *Journal
	id      string
	seq     Sequencer
	logger  *slog.Logger
}

// NewSession registers a new session and returns a handle for recording
// its transitions. IDs come from gen, seq numbers from seq.
func (j *Journal) NewSession(ctx context.Context, gen SessionIDGenerator, seq Sequencer) (*Session, error) {
	id := gen.Generate()
	if id == "" {
		return nil, fmt.Errorf("new session: empty session id")
	}

	if _, err := j.db.ExecContext(ctx, `INSERT INTO sessions (id) VALUES (?)`, id); err != nil {
		return nil, fmt.Errorf("new session %s: %w", id, err)
	}

	return &Session{
		journal: j,
		id:      id,
		seq:     seq,
		logger:  slog.Default(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetLogger replaces the logger used for write failures.
func (s *Session) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Observer returns an engine observer that records every transition with
// the next seq.
//
// Write failures are logged and otherwise ignored: the engine keeps
// running even when its journal cannot keep up.
func (s *Session) Observer(ctx context.Context) engine.Observer {
	return func(t engine.Transition) {
		seq := s.seq.Next()
		if err := s.journal.Record(ctx, s.id, seq, t); err != nil {
			s.logger.Error("journal write failed",
				"session", s.id,
				"seq", seq,
				"action", t.Action.String(),
				"error", err,
			)
		}
	}
}

// Record inserts one transition.
// The (sessionID, seq) pair must be new and the session must exist.
func (j *Journal) Record(ctx context.Context, sessionID string, seq int64, t engine.Transition) error {
	before, err := json.Marshal(t.Before)
	if err != nil {
		return fmt.Errorf("record transition: marshal before state: %w", err)
	}
	after, err := json.Marshal(t.After)
	if err != nil {
		return fmt.Errorf("record transition: marshal after state: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO transitions
		(session_id, seq, action_kind, action_arg, before_state, after_state, fault)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sessionID,
		seq,
		string(t.Action.Kind),
		t.Action.Arg,
		string(before),
		string(after),
		string(engine.CodeOf(t.Err)),
	)
	if err != nil {
		return fmt.Errorf("record transition %s/%d: %w", sessionID, seq, err)
	}

	return nil
}
