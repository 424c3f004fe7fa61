package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

const sumScenario = `
name: sum
description: "two plus two"
session: "cli-sum"
steps:
  - keys: "2 + 2 ="
    expect:
      display: "4"
`

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644))
}

func TestTestCommand_MissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	out, _, err := execute(t, "test", harnessScenarios)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ chained_addition\n")
	assert.Contains(t, out, "✓ division_by_zero\n")
	assert.Contains(t, out, "Test Summary: 4 passed, 0 failed, 4 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Filter(t *testing.T) {
	out, _, err := execute(t, "test", "--format", "json", "--filter", "division_*", harnessScenarios)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, ScenarioResult{Name: "division_by_zero", Pass: true, Golden: "match"}, resp.Data.Scenarios[0])
}

func TestTestCommand_EmptyDir(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "sum", sumScenario)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err, "a missing golden file falls back to assertions")
	assert.Contains(t, out, "✓ sum\n")

	out, _, err = execute(t, "test", "--update", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sum (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "sum.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		"scenario: sum\n"+
			"session: cli-sum\n"+
			"1 digit(2) display=\"2\" expression=\"\"\n"+
			"2 operator(+) display=\"2\" expression=\"2 +\"\n"+
			"3 digit(2) display=\"2\" expression=\"2 +\"\n"+
			"4 calculate display=\"4\" expression=\"\"\n",
		string(golden))

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "sum", sumScenario)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "sum.golden"), []byte("scenario: sum\n"), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ sum")
	assert.Contains(t, out, "trace does not match golden file")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommand_FailingExpectation(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wrong", `
name: wrong
description: "expects the wrong sum"
steps:
  - keys: "2 + 2 ="
    expect:
      display: "5"
`)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `display: expected "5", got "4"`)
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken", "name: broken\n")

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "load error")
}
