package engine

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// workContext carries enough precision that sums, differences and products
// of two 12-digit operands are exact before the final rounding.
var workContext = apd.BaseContext.WithPrecision(34)

// displayContext rounds computed results to MaxDigits significant digits.
var displayContext = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(MaxDigits)
	c.Rounding = apd.RoundHalfUp
	return c
}()

var hundred = apd.New(100, 0)

// ParseOperand converts display text into a decimal.
// A trailing decimal point ("5.") is accepted.
func ParseOperand(s string) (*apd.Decimal, error) {
	if IsSentinel(s) {
		return nil, newInvalidOperandError(s, fmt.Errorf("sentinel display"))
	}
	if err := validateLiteral(s); err != nil {
		return nil, newInvalidOperandError(s, err)
	}
	d, _, err := apd.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return nil, newInvalidOperandError(s, err)
	}
	return d, nil
}

// binaryOp applies op to a and b.
// Returns a DIVISION_BY_ZERO CalcError for ÷ with a zero divisor.
func binaryOp(op Operator, a, b *apd.Decimal) (*apd.Decimal, error) {
	result := new(apd.Decimal)
	var err error

	switch op {
	case OpAdd:
		_, err = workContext.Add(result, a, b)
	case OpSubtract:
		_, err = workContext.Sub(result, a, b)
	case OpMultiply:
		_, err = workContext.Mul(result, a, b)
	case OpDivide:
		if b.IsZero() {
			return nil, newDivisionByZeroError()
		}
		_, err = workContext.Quo(result, a, b)
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FormatResult renders a computed value for the display.
//
// The value is rounded to MaxDigits significant digits, trailing zeros are
// dropped, and the result is written in plain decimal notation. Negative
// zero renders as "0". A rendering with more than MaxDigits digits is an
// OVERFLOW CalcError.
func FormatResult(d *apd.Decimal) (string, error) {
	var rounded apd.Decimal
	if _, err := displayContext.Round(&rounded, d); err != nil {
		return "", fmt.Errorf("round %s: %w", d.String(), err)
	}
	if rounded.IsZero() {
		return "0", nil
	}
	rounded.Reduce(&rounded)

	s := rounded.Text('f')
	if countDigits(s) > MaxDigits {
		return "", newOverflowError(s)
	}
	return s, nil
}

// evaluate parses both operands, applies op and formats the result.
func evaluate(op Operator, previous, current string) (string, error) {
	a, err := ParseOperand(previous)
	if err != nil {
		return "", err
	}
	b, err := ParseOperand(current)
	if err != nil {
		return "", err
	}
	result, err := binaryOp(op, a, b)
	if err != nil {
		return "", err
	}
	return FormatResult(result)
}

// percentOf divides the display value by 100 and formats the result.
func percentOf(display string) (string, error) {
	v, err := ParseOperand(display)
	if err != nil {
		return "", err
	}
	result := new(apd.Decimal)
	if _, err := workContext.Quo(result, v, hundred); err != nil {
		return "", fmt.Errorf("percentage: %w", err)
	}
	return FormatResult(result)
}
