package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, "0", s.Display)
	assert.Equal(t, "", s.PreviousValue)
	assert.Equal(t, OpNone, s.Operator)
	assert.False(t, s.WaitingForOperand)
	assert.Equal(t, "", s.Expression)
	assert.NoError(t, s.Validate())
	assert.False(t, s.HasPending())
	assert.False(t, s.IsError())
}

func TestState_Validate(t *testing.T) {
	valid := []State{
		{Display: "0"},
		{Display: "-0."},
		{Display: "123456789012"},
		{Display: "-1234.56789012"},
		{Display: DisplayError, WaitingForOperand: true},
		{Display: DisplayOverflow, WaitingForOperand: true},
		{Display: "3", PreviousValue: "2", Operator: OpAdd, Expression: "2 +"},
	}
	for _, s := range valid {
		t.Run("valid "+s.Display, func(t *testing.T) {
			assert.NoError(t, s.Validate())
		})
	}

	invalid := map[string]State{
		"operator without previous": {Display: "3", Operator: OpAdd},
		"empty display":             {Display: ""},
		"bare sign":                 {Display: "-"},
		"two points":                {Display: "1.2.3"},
		"letters":                   {Display: "12a"},
		"thirteen digits":           {Display: "1234567890123"},
		"lone point":                {Display: "."},
	}
	for name, s := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.Validate())
		})
	}
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"+": OpAdd,
		"-": OpSubtract,
		"−": OpSubtract,
		"*": OpMultiply,
		"x": OpMultiply,
		"×": OpMultiply,
		"/": OpDivide,
		"÷": OpDivide,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseOperator(in)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseOperator("^")
	assert.Error(t, err)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "digit(7)", Digit('7').String())
	assert.Equal(t, "operator(÷)", Op(OpDivide).String())
	assert.Equal(t, "calculate", Simple(ActionCalculate).String())
}
