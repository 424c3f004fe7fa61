package engine

import (
	"fmt"
	"strings"
)

// MaxDigits caps the number of digit characters in the display and in any
// computed result.
const MaxDigits = 12

// Sentinel display values.
const (
	DisplayError    = "Error"
	DisplayOverflow = "Overflow"
)

// Operator is a pending binary operator.
type Operator string

const (
	// OpNone means no operation is pending.
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// ParseOperator maps operator symbols, including keyboard and typographic
// variants, to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSubtract, nil
	case "*", "x", "×":
		return OpMultiply, nil
	case "/", "÷":
		return OpDivide, nil
	default:
		return OpNone, fmt.Errorf("unknown operator %q", s)
	}
}

// State is the complete calculator state for one session.
//
// INVARIANTS:
//   - Operator != OpNone implies PreviousValue != ""
//   - Display is a numeric literal with at most one "." and at most
//     MaxDigits digits, or one of the sentinels
type State struct {
	// Display is the text of the current operand.
	Display string `json:"display"`

	// PreviousValue is the operand captured by the last operator press.
	// Empty when no binary operation is pending.
	PreviousValue string `json:"previous_value,omitempty"`

	// Operator is the pending operator awaiting a second operand.
	Operator Operator `json:"operator,omitempty"`

	// WaitingForOperand means the next digit starts a new operand.
	WaitingForOperand bool `json:"waiting_for_operand"`

	// Expression is the "<previous> <operator>" trace shown above the display.
	Expression string `json:"expression,omitempty"`
}

// Initial returns the state of a freshly opened calculator.
func Initial() State {
	return State{Display: "0"}
}

// IsError reports whether the display holds a sentinel.
func (s State) IsError() bool {
	return IsSentinel(s.Display)
}

// HasPending reports whether a binary operation is waiting for its
// second operand.
func (s State) HasPending() bool {
	return s.Operator != OpNone && s.PreviousValue != ""
}

// Validate checks the state invariants.
func (s State) Validate() error {
	if s.Operator != OpNone && s.PreviousValue == "" {
		return fmt.Errorf("operator %q pending without a previous value", s.Operator)
	}
	if s.IsError() {
		return nil
	}
	if err := validateLiteral(s.Display); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// IsSentinel reports whether s is one of the non-numeric display values.
func IsSentinel(s string) bool {
	return s == DisplayError || s == DisplayOverflow
}

// countDigits returns the number of decimal digit characters in s,
// ignoring sign and decimal point.
func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

func validateLiteral(s string) error {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return fmt.Errorf("empty literal %q", s)
	}
	dots := 0
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '.':
			dots++
		case c < '0' || c > '9':
			return fmt.Errorf("invalid character %q in %q", c, s)
		}
	}
	if dots > 1 {
		return fmt.Errorf("more than one decimal point in %q", s)
	}
	if body == "." {
		return fmt.Errorf("no digits in %q", s)
	}
	if n := countDigits(body); n > MaxDigits {
		return fmt.Errorf("%d digits in %q exceeds %d", n, s, MaxDigits)
	}
	return nil
}
