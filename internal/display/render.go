package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/calc/internal/engine"
)

// DefaultWidth is the panel width used when a host does not choose one.
const DefaultWidth = 24

// Screen is everything a host needs to draw the calculator after an input.
type Screen struct {
	// Expression is the pending "<previous> <operator>" line; empty when idle.
	Expression string `json:"expression"`

	// Value is the display value after FormatForDisplay.
	Value string `json:"value"`

	// Raw is the unformatted display value.
	Raw string `json:"raw"`

	// IsError marks a sentinel value that gets the error treatment.
	IsError bool `json:"is_error"`

	// ActiveOperator is the operator key to highlight: the pending operator
	// while the engine waits for the second operand.
	ActiveOperator engine.Operator `json:"active_operator,omitempty"`

	// ClearLabel is "AC" when the clear key would reset everything and "C"
	// when it would only clear the entry.
	ClearLabel string `json:"clear_label"`
}

// Render builds the Screen for s.
func Render(s engine.State) Screen {
	sc := Screen{
		Expression: s.Expression,
		Value:      FormatForDisplay(s.Display),
		Raw:        s.Display,
		IsError:    s.IsError(),
		ClearLabel: "C",
	}
	if s.WaitingForOperand && s.HasPending() {
		sc.ActiveOperator = s.Operator
	}
	if s.Display == "0" {
		sc.ClearLabel = "AC"
	}
	return sc
}

// Text draws the screen as a right-aligned panel of the given width:
// the expression line above the value line. Sentinels are prefixed with
// "!" so they stand out from numbers.
func (sc Screen) Text(width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	value := sc.Value
	if sc.IsError {
		value = "! " + value
	}

	var b strings.Builder
	b.WriteString(alignRight(sc.Expression, width))
	b.WriteByte('\n')
	b.WriteString(alignRight(value, width))
	b.WriteByte('\n')
	return b.String()
}

// String implements fmt.Stringer with the default panel width.
func (sc Screen) String() string {
	return sc.Text(DefaultWidth)
}

func alignRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return fmt.Sprintf("%s%s", strings.Repeat(" ", width-n), s)
}
