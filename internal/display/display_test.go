package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/calc/internal/engine"
)

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"1234567.89", "1,234,567.89"},
		{"123456789012", "123,456,789,012"},
		{"-1234.5", "-1,234.5"},
		{"-12", "-12"},
		{"1234.", "1,234."},
		{"0.000001", "0.000001"},
		{"-0.", "-0."},
		{"0.12345678", "0.12345678"},
		{"Error", "Error"},
		{"Overflow", "Overflow"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForDisplay(tt.raw))
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("initial", func(t *testing.T) {
		sc := Render(engine.Initial())
		assert.Equal(t, Screen{Value: "0", Raw: "0", ClearLabel: "AC"}, sc)
	})

	t.Run("pending operator is active while waiting", func(t *testing.T) {
		s := engine.State{
			Display:           "1234",
			PreviousValue:     "1234",
			Operator:          engine.OpMultiply,
			WaitingForOperand: true,
			Expression:        "1234 ×",
		}
		sc := Render(s)
		assert.Equal(t, "1234 ×", sc.Expression)
		assert.Equal(t, "1,234", sc.Value)
		assert.Equal(t, engine.OpMultiply, sc.ActiveOperator)
		assert.Equal(t, "C", sc.ClearLabel)
		assert.False(t, sc.IsError)
	})

	t.Run("operator inactive once second operand is typed", func(t *testing.T) {
		s := engine.State{
			Display:       "5",
			PreviousValue: "1234",
			Operator:      engine.OpMultiply,
			Expression:    "1234 ×",
		}
		assert.Equal(t, engine.OpNone, Render(s).ActiveOperator)
	})

	t.Run("sentinel", func(t *testing.T) {
		s := engine.State{Display: engine.DisplayOverflow, WaitingForOperand: true}
		sc := Render(s)
		assert.True(t, sc.IsError)
		assert.Equal(t, "Overflow", sc.Value)
		assert.Equal(t, "C", sc.ClearLabel)
	})
}

func TestScreen_Text(t *testing.T) {
	sc := Screen{Expression: "12 +", Value: "3,456"}
	assert.Equal(t, "      12 +\n     3,456\n", sc.Text(10))

	sc = Screen{Value: "Error", IsError: true}
	assert.Equal(t, "         \n  ! Error\n", sc.Text(9))

	// Rune width, not byte width, drives alignment.
	sc = Screen{Expression: "8 ÷", Value: "8"}
	assert.Equal(t, "  8 ÷\n    8\n", sc.Text(5))

	// Overlong values are not truncated.
	sc = Screen{Value: "123,456,789,012"}
	assert.Equal(t, "    \n123,456,789,012\n", sc.Text(4))
}

func TestScreen_StringUsesDefaultWidth(t *testing.T) {
	sc := Screen{Value: "7"}
	assert.Equal(t, sc.Text(DefaultWidth), sc.String())
	assert.Equal(t, sc.Text(0), sc.String())
}
