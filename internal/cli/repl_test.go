package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReplWith(t *testing.T, input string, args ...string) string {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"repl"}, args...))

	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestReplCommand_StateCarriesAcrossLines(t *testing.T) {
	out := runReplWith(t, "7 +\n3\n\n=\n", "--width", "5")

	assert.Equal(t,
		"  7 +\n    7\n"+
			"  7 +\n    3\n"+
			"     \n   10\n",
		out)
}

func TestReplCommand_QuitStopsReading(t *testing.T) {
	out := runReplWith(t, "1\nquit\n2\n", "--width", "3")
	assert.Equal(t, "   \n  1\n", out)

	out = runReplWith(t, "  exit  \n9\n")
	assert.Empty(t, out)
}

func TestReplCommand_JSON(t *testing.T) {
	out := runReplWith(t, "5 / 0 =\n1\n", "--format", "json")

	dec := json.NewDecoder(strings.NewReader(out))
	var screens []evalResponse
	for dec.More() {
		var resp evalResponse
		require.NoError(t, dec.Decode(&resp))
		screens = append(screens, resp)
	}

	require.Len(t, screens, 2)
	assert.True(t, screens[0].Data.Screen.IsError)
	assert.Equal(t, "Error", screens[0].Data.Screen.Value)
	assert.False(t, screens[1].Data.Screen.IsError)
	assert.Equal(t, "1", screens[1].Data.State.Display)
}

func TestReplCommand_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "repl", "1")
	require.Error(t, err)
}
