package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICommand_InvalidWidth(t *testing.T) {
	_, _, err := execute(t, "tui", "--width", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTUICommand_QuitsOnQ(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader("12+3=q"))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"tui"})

	require.NoError(t, cmd.Execute())
}
