package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/keymap"
)

// KeyBinding is one named key and the action it sends.
type KeyBinding struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// KeysResult lists every binding.
type KeysResult struct {
	Bindings []KeyBinding `json:"bindings"`
}

// RenderText prints one binding per line.
func (r KeysResult) RenderText(w io.Writer) error {
	for _, b := range r.Bindings {
		fmt.Fprintf(w, "%-10s %s\n", b.Key, b.Action)
	}
	return nil
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "keys",
		Short:         "List the key bindings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := KeysResult{Bindings: []KeyBinding{{Key: "0-9", Action: "digit"}}}
			for _, k := range keymap.Keys() {
				a, _ := keymap.Lookup(k)
				result.Bindings = append(result.Bindings, KeyBinding{Key: k, Action: a.String()})
			}
			return rootOpts.formatter(cmd).Success(result)
		},
	}
}
