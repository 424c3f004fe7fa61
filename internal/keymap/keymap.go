// Package keymap translates keyboard keys and keypad labels into engine
// actions.
//
// The keyboard mapping follows browser key names: "0"-"9", ".", "+", "-",
// "*", "/", "Enter", "=", "Escape", "Backspace" and "%". Keypad button
// labels ("×", "÷", "−", "±", "AC", "C", "CE", "⌫") are accepted too, so a
// host can feed either source through the same table. Anything else is
// not a key and is ignored by hosts.
package keymap

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/roach88/calc/internal/engine"
)

var bindings = map[string]engine.Action{
	".": engine.Simple(engine.ActionDecimal),

	"+": engine.Op(engine.OpAdd),
	"-": engine.Op(engine.OpSubtract),
	"−": engine.Op(engine.OpSubtract),
	"*": engine.Op(engine.OpMultiply),
	"×": engine.Op(engine.OpMultiply),
	"/": engine.Op(engine.OpDivide),
	"÷": engine.Op(engine.OpDivide),

	"=":     engine.Simple(engine.ActionCalculate),
	"Enter": engine.Simple(engine.ActionCalculate),

	"Escape": engine.Simple(engine.ActionClearAll),
	"AC":     engine.Simple(engine.ActionClearAll),
	"C":      engine.Simple(engine.ActionClear),
	"CE":     engine.Simple(engine.ActionClearEntry),

	"Backspace": engine.Simple(engine.ActionBackspace),
	"⌫":         engine.Simple(engine.ActionBackspace),

	"%": engine.Simple(engine.ActionPercentage),

	"±":   engine.Simple(engine.ActionToggleSign),
	"+/-": engine.Simple(engine.ActionToggleSign),
}

// Lookup returns the action bound to key.
// The second result is false for keys with no binding.
func Lookup(key string) (engine.Action, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return engine.Digit(key[0]), true
	}
	a, ok := bindings[key]
	return a, ok
}

// Keys returns every bound non-digit key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tokenize splits command-line words into keys.
//
// A word that is itself a bound key ("Enter", "AC", "+/-") is kept whole.
// Any other word is split into single characters, so "12+3=" yields
// "1", "2", "+", "3", "=".
func Tokenize(words []string) []string {
	var keys []string
	for _, w := range words {
		for _, field := range strings.Fields(w) {
			if _, ok := bindings[field]; ok {
				keys = append(keys, field)
				continue
			}
			for len(field) > 0 {
				r, size := utf8.DecodeRuneInString(field)
				if r == utf8.RuneError && size <= 1 {
					size = 1
				}
				keys = append(keys, field[:size])
				field = field[size:]
			}
		}
	}
	return keys
}
