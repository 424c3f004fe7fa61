package engine

import (
	"log/slog"
)

// Transition records one applied action.
type Transition struct {
	Action Action
	Before State
	After  State

	// Err is the *CalcError behind an Error Reset, or nil.
	Err error
}

// Observer is notified after every transition, in order.
type Observer func(Transition)

// Engine owns the state of one calculator session.
//
// Thread-safety model: none. An Engine has exactly one owner, which
// serializes input events and reads State between them.
type Engine struct {
	state     State
	logger    *slog.Logger
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithState starts the engine from s instead of the initial state.
func WithState(s State) Option {
	return func(e *Engine) {
		e.state = s
	}
}

// New creates an Engine in the initial state.
func New(opts ...Option) *Engine {
	e := &Engine{
		state:  Initial(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Dispatch applies a to the current state and notifies observers.
//
// Malformed actions are logged and ignored: the state is unchanged and no
// observer is notified. Arithmetic failures are already recovered in the
// returned transition's After state; Err only describes them.
func (e *Engine) Dispatch(a Action) Transition {
	before := e.state
	after, err := Apply(before, a)

	if err != nil && CodeOf(err) == "" {
		e.logger.Warn("action ignored",
			"action", a.String(),
			"error", err,
		)
		return Transition{Action: a, Before: before, After: before}
	}

	e.state = after
	t := Transition{Action: a, Before: before, After: after, Err: err}

	if err != nil {
		e.logger.Warn("error reset",
			"action", a.String(),
			"code", CodeOf(err),
			"display", after.Display,
			"error", err,
		)
	} else {
		e.logger.Debug("transition",
			"action", a.String(),
			"display", after.Display,
			"operator", string(after.Operator),
			"waiting", after.WaitingForOperand,
		)
	}

	for _, o := range e.observers {
		o(t)
	}
	return t
}

// InputDigit dispatches a digit key.
func (e *Engine) InputDigit(d byte) { e.Dispatch(Digit(d)) }

// InputDecimal dispatches the decimal point key.
func (e *Engine) InputDecimal() { e.Dispatch(Simple(ActionDecimal)) }

// Backspace dispatches the backspace key.
func (e *Engine) Backspace() { e.Dispatch(Simple(ActionBackspace)) }

// ToggleSign dispatches the +/- key.
func (e *Engine) ToggleSign() { e.Dispatch(Simple(ActionToggleSign)) }

// Percentage dispatches the % key.
func (e *Engine) Percentage() { e.Dispatch(Simple(ActionPercentage)) }

// ClearEntry dispatches the C key.
func (e *Engine) ClearEntry() { e.Dispatch(Simple(ActionClearEntry)) }

// ClearAll dispatches the AC key.
func (e *Engine) ClearAll() { e.Dispatch(Simple(ActionClearAll)) }

// ApplyOperator dispatches an operator key.
func (e *Engine) ApplyOperator(op Operator) { e.Dispatch(Op(op)) }

// Calculate dispatches the = key.
func (e *Engine) Calculate() { e.Dispatch(Simple(ActionCalculate)) }
