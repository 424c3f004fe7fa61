package engine

import (
	"errors"
	"strings"
)

// Apply runs one action against s and returns the resulting state.
//
// The returned state always satisfies State.Validate. A non-nil error is a
// *CalcError describing the failure that triggered an Error Reset, or a
// validation error for a malformed action (in which case s is returned
// unchanged).
func Apply(s State, a Action) (State, error) {
	if err := a.Validate(); err != nil {
		return s, err
	}

	switch a.Kind {
	case ActionDigit:
		return InputDigit(s, a.Arg[0]), nil
	case ActionDecimal:
		return InputDecimal(s), nil
	case ActionBackspace:
		return Backspace(s), nil
	case ActionToggleSign:
		return ToggleSign(s), nil
	case ActionPercentage:
		return Percentage(s)
	case ActionClearEntry:
		return ClearEntry(s), nil
	case ActionClearAll:
		return ClearAll(), nil
	case ActionClear:
		if s.Display == "0" {
			return ClearAll(), nil
		}
		return ClearEntry(s), nil
	case ActionOperator:
		op, _ := ParseOperator(a.Arg)
		return ApplyOperator(s, op)
	case ActionCalculate:
		return Calculate(s)
	}
	return s, nil
}

// InputDigit appends d to the display, or starts a new operand when the
// engine is waiting for one. Input beyond MaxDigits is ignored.
func InputDigit(s State, d byte) State {
	digit := string(d)
	if s.WaitingForOperand {
		s.Display = digit
		s.WaitingForOperand = false
		return s
	}
	if countDigits(s.Display) >= MaxDigits {
		return s
	}
	switch s.Display {
	case "0":
		s.Display = digit
	case "-0":
		s.Display = "-" + digit
	default:
		s.Display += digit
	}
	return s
}

// InputDecimal adds a decimal point, or starts "0." when waiting for an operand.
func InputDecimal(s State) State {
	if s.WaitingForOperand {
		s.Display = "0."
		s.WaitingForOperand = false
		return s
	}
	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

// Backspace removes the last display character.
// Removing the last digit (or leaving a bare sign) resets the display to "0".
func Backspace(s State) State {
	if s.WaitingForOperand {
		return s
	}
	trimmed := s.Display[:len(s.Display)-1]
	if trimmed == "" || trimmed == "-" {
		trimmed = "0"
	}
	s.Display = trimmed
	return s
}

// ToggleSign flips the sign of the display. Zero and sentinels are left alone.
func ToggleSign(s State) State {
	if s.Display == "0" || s.IsError() {
		return s
	}
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// Percentage divides the display by 100.
// A display that does not parse, or a result that overflows, resets to
// the Overflow sentinel.
func Percentage(s State) (State, error) {
	result, err := percentOf(s.Display)
	if err != nil {
		return errorReset(s, err), err
	}
	s.Display = result
	return s, nil
}

// ClearEntry resets the display only; any pending operation survives.
func ClearEntry(s State) State {
	s.Display = "0"
	return s
}

// ClearAll returns the initial state.
func ClearAll() State {
	return Initial()
}

// ApplyOperator captures the display as the left operand, or, when an
// operation is already pending, evaluates it left to right and chains next
// onto the result.
func ApplyOperator(s State, next Operator) (State, error) {
	if !s.HasPending() {
		if s.IsError() {
			return s, nil
		}
		s.PreviousValue = s.Display
		s.Operator = next
		s.Expression = expression(s.Display, next)
		s.WaitingForOperand = true
		return s, nil
	}

	result, err := evaluate(s.Operator, s.PreviousValue, s.Display)
	if err != nil {
		return errorReset(s, err), err
	}

	s.Display = result
	s.PreviousValue = result
	s.Operator = next
	s.Expression = expression(result, next)
	s.WaitingForOperand = true
	return s, nil
}

// Calculate evaluates the pending operation ("=").
// Without a pending operation it is a no-op.
func Calculate(s State) (State, error) {
	if !s.HasPending() {
		return s, nil
	}

	result, err := evaluate(s.Operator, s.PreviousValue, s.Display)
	if err != nil {
		return errorReset(s, err), err
	}

	s.Display = result
	s.PreviousValue = ""
	s.Operator = OpNone
	s.Expression = ""
	s.WaitingForOperand = true
	return s, nil
}

// errorReset shows the sentinel for err and drops the pending operation.
// The next digit starts a fresh entry because WaitingForOperand is set.
func errorReset(s State, err error) State {
	sentinel := DisplayOverflow
	var ce *CalcError
	if errors.As(err, &ce) {
		sentinel = ce.Sentinel()
	}
	return State{
		Display:           sentinel,
		WaitingForOperand: true,
	}
}

func expression(operand string, op Operator) string {
	return operand + " " + string(op)
}
