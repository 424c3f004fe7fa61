// Package tui is a full-screen keypad host for the calculator engine.
//
// The model draws the display panel above a keypad grid. The clear key
// shows AC or C as the engine would treat it, and the pending operator key
// is highlighted while the engine waits for the second operand. Keyboard
// input goes through the keymap table, so the TUI accepts exactly the keys
// the other hosts accept plus a few lowercase conveniences.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
	"github.com/roach88/calc/internal/keymap"
)

// terminalKeys maps bubbletea key names to keymap keys.
var terminalKeys = map[string]string{
	"enter":     "Enter",
	"esc":       "Escape",
	"backspace": "Backspace",
	"c":         "C",
	"n":         "±",
	"x":         "×",
}

type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Sign      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Equals},
		{k.Clear, k.Sign, k.Help, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."), key.WithHelp("0-9 .", "enter number")),
		Operators: key.NewBinding(key.WithKeys("+", "-", "*", "/", "x"), key.WithHelp("+ - * /", "operator")),
		Equals:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "calculate")),
		Clear:     key.NewBinding(key.WithKeys("esc", "c", "backspace"), key.WithHelp("esc/c/⌫", "clear")),
		Sign:      key.NewBinding(key.WithKeys("n", "%"), key.WithHelp("n %", "sign, percent")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for one calculator session.
type Model struct {
	engine *engine.Engine
	keys   keyMap
	help   help.Model
	width  int

	// fault is the code of the last Error Reset, cleared by the next key.
	fault engine.ErrorCode
}

// Option configures a Model.
type Option func(*Model)

// WithWidth sets the display panel width.
func WithWidth(w int) Option {
	return func(m *Model) {
		if w > 0 {
			m.width = w
		}
	}
}

// New creates a Model driving a fresh engine.
func New(logger *slog.Logger, opts ...Option) Model {
	m := Model{
		keys:  defaultKeys(),
		help:  help.New(),
		width: display.DefaultWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.engine = engine.New(engine.WithLogger(logger))
	return m
}

// State returns the engine state.
func (m Model) State() engine.State {
	return m.engine.State()
}

// Fault returns the code of the Error Reset caused by the last key, if any.
func (m Model) Fault() engine.ErrorCode {
	return m.fault
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, k := range split(msg) {
			switch {
			case key.Matches(k, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(k, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
			default:
				m.press(k.String())
			}
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// split breaks a run of typed or pasted runes into one key per rune.
func split(msg tea.KeyMsg) []tea.KeyMsg {
	if msg.Type != tea.KeyRunes || len(msg.Runes) < 2 {
		return []tea.KeyMsg{msg}
	}
	keys := make([]tea.KeyMsg, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
	}
	return keys
}

func (m *Model) press(name string) {
	if alias, ok := terminalKeys[name]; ok {
		name = alias
	}
	a, ok := keymap.Lookup(name)
	if !ok {
		return
	}
	t := m.engine.Dispatch(a)
	m.fault = engine.CodeOf(t.Err)
}

// View implements tea.Model.
func (m Model) View() string {
	return m.render(display.Render(m.engine.State()))
}
