package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
)

// clearCell is replaced by the screen's clear label.
const clearCell = "AC"

var keypad = [][]string{
	{clearCell, "±", "%", string(engine.OpDivide)},
	{"7", "8", "9", string(engine.OpMultiply)},
	{"4", "5", "6", "−"},
	{"1", "2", "3", string(engine.OpAdd)},
	{"0", ".", "⌫", "="},
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	expressionStyle = lipgloss.NewStyle().Faint(true).Align(lipgloss.Right)
	valueStyle      = lipgloss.NewStyle().Bold(true).Align(lipgloss.Right)
	errorStyle      = valueStyle.Foreground(lipgloss.Color("9"))

	cellStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	activeStyle = cellStyle.Reverse(true)
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m Model) render(sc display.Screen) string {
	value := valueStyle
	if sc.IsError {
		value = errorStyle
	}

	screen := lipgloss.JoinVertical(lipgloss.Right,
		expressionStyle.Width(m.width).Render(sc.Expression),
		value.Width(m.width).Render(sc.Value),
	)

	rows := make([]string, 0, len(keypad))
	for _, row := range keypad {
		cells := make([]string, 0, len(row))
		for _, label := range row {
			cells = append(cells, renderCell(label, sc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	parts := []string{
		panelStyle.Render(screen),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	}
	if m.fault != "" {
		parts = append(parts, faultStyle.Render(string(m.fault)))
	}
	parts = append(parts, m.help.View(m.keys))

	return strings.Join(parts, "\n") + "\n"
}

func renderCell(label string, sc display.Screen) string {
	if label == clearCell {
		label = sc.ClearLabel
	}
	if sc.ActiveOperator != engine.OpNone && label == activeLabel(sc.ActiveOperator) {
		return activeStyle.Render(label)
	}
	return cellStyle.Render(label)
}

// activeLabel is the keypad label of op.
func activeLabel(op engine.Operator) string {
	if op == engine.OpSubtract {
		return "−"
	}
	return string(op)
}
