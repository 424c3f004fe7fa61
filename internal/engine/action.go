package engine

import "fmt"

// ActionKind names one engine operation.
type ActionKind string

const (
	ActionDigit      ActionKind = "digit"
	ActionDecimal    ActionKind = "decimal"
	ActionBackspace  ActionKind = "backspace"
	ActionToggleSign ActionKind = "toggle_sign"
	ActionPercentage ActionKind = "percentage"
	ActionClearEntry ActionKind = "clear_entry"
	ActionClearAll   ActionKind = "clear_all"
	// ActionClear is the keypad's combined key: clear_all when the display
	// reads "0", clear_entry otherwise.
	ActionClear     ActionKind = "clear"
	ActionOperator  ActionKind = "operator"
	ActionCalculate ActionKind = "calculate"
)

// Action is a single input event for the engine.
// Arg carries the digit for ActionDigit and the operator for ActionOperator.
type Action struct {
	Kind ActionKind `json:"kind"`
	Arg  string     `json:"arg,omitempty"`
}

// String renders the action as kind or kind(arg).
func (a Action) String() string {
	if a.Arg == "" {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s(%s)", a.Kind, a.Arg)
}

// Digit returns the action for a digit key.
func Digit(d byte) Action {
	return Action{Kind: ActionDigit, Arg: string(d)}
}

// Op returns the action for an operator key.
func Op(op Operator) Action {
	return Action{Kind: ActionOperator, Arg: string(op)}
}

// Simple returns an argument-free action.
func Simple(kind ActionKind) Action {
	return Action{Kind: kind}
}

// Validate checks that the action kind is known and its argument is well formed.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionDigit:
		if len(a.Arg) != 1 || a.Arg[0] < '0' || a.Arg[0] > '9' {
			return fmt.Errorf("digit action needs a single digit, got %q", a.Arg)
		}
	case ActionOperator:
		if _, err := ParseOperator(a.Arg); err != nil {
			return fmt.Errorf("operator action: %w", err)
		}
	case ActionDecimal, ActionBackspace, ActionToggleSign, ActionPercentage,
		ActionClearEntry, ActionClearAll, ActionClear, ActionCalculate:
		if a.Arg != "" {
			return fmt.Errorf("%s action takes no argument, got %q", a.Kind, a.Arg)
		}
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}
