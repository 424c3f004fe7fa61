package engine

import (
	"errors"
	"fmt"
)

// CalcError describes an arithmetic failure recovered by the Error Reset.
//
// CalcError never escapes to the input surface as a failure: Apply always
// returns a valid State, and the error only reports which condition drove
// the reset.
type CalcError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Operand is the offending operand text, when one is known.
	Operand string
}

// ErrorCode categorizes calculator failures.
type ErrorCode string

const (
	// ErrCodeDivisionByZero indicates a ÷ with a zero second operand.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeOverflow indicates a result needing more than MaxDigits digits.
	ErrCodeOverflow ErrorCode = "OVERFLOW"

	// ErrCodeInvalidOperand indicates display text that does not parse as a number.
	ErrCodeInvalidOperand ErrorCode = "INVALID_OPERAND"
)

// Error implements the error interface.
func (e *CalcError) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s (operand=%s)", e.Code, e.Message, e.Operand)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Sentinel returns the display value the Error Reset shows for this failure.
func (e *CalcError) Sentinel() string {
	if e.Code == ErrCodeDivisionByZero {
		return DisplayError
	}
	return DisplayOverflow
}

// IsDivisionByZero returns true if err is a division-by-zero CalcError.
func IsDivisionByZero(err error) bool {
	return hasCode(err, ErrCodeDivisionByZero)
}

// IsOverflow returns true if err is an overflow CalcError.
func IsOverflow(err error) bool {
	return hasCode(err, ErrCodeOverflow)
}

// IsInvalidOperand returns true if err is an invalid-operand CalcError.
func IsInvalidOperand(err error) bool {
	return hasCode(err, ErrCodeInvalidOperand)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a CalcError.
func CodeOf(err error) ErrorCode {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

func newDivisionByZeroError() *CalcError {
	return &CalcError{
		Code:    ErrCodeDivisionByZero,
		Message: "division by zero",
	}
}

func newOverflowError(rendered string) *CalcError {
	return &CalcError{
		Code:    ErrCodeOverflow,
		Message: fmt.Sprintf("result needs more than %d digits", MaxDigits),
		Operand: rendered,
	}
}

func newInvalidOperandError(operand string, err error) *CalcError {
	return &CalcError{
		Code:    ErrCodeInvalidOperand,
		Message: fmt.Sprintf("not a number: %v", err),
		Operand: operand,
	}
}
