package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calc/internal/engine"
)

func TestSnapshot_Format(t *testing.T) {
	r := NewResult("sess")
	r.Trace = []TraceEvent{
		{Seq: 1, Label: "digit(1)", Display: "1"},
		{Seq: 2, Label: "operator(÷)", Display: "1", Expression: "1 ÷"},
		{Seq: 3, Label: "calculate", Display: "Error", Fault: engine.ErrCodeDivisionByZero},
	}

	want := "scenario: demo\n" +
		"session: sess\n" +
		"1 digit(1) display=\"1\" expression=\"\"\n" +
		"2 operator(÷) display=\"1\" expression=\"1 ÷\"\n" +
		"3 calculate display=\"Error\" expression=\"\" fault=DIVISION_BY_ZERO\n"
	assert.Equal(t, want, string(Snapshot("demo", r)))
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "x.golden"), GoldenPath("scenarios", "x"))
}

func TestCompareGolden(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden", "case.golden")
	snap := []byte("scenario: case\nsession: s\n1 digit(1) display=\"1\" expression=\"\"\n")

	err := CompareGolden(path, snap, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, CompareGolden(path, snap, true))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap, written)

	assert.NoError(t, CompareGolden(path, snap, false))

	changed := []byte("scenario: case\nsession: s\n1 digit(2) display=\"2\" expression=\"\"\n")
	err = CompareGolden(path, changed, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGoldenMismatch)
	assert.Contains(t, err.Error(), "digit(2)")
}

func TestCompareGolden_NormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.golden")
	require.NoError(t, os.WriteFile(path, []byte("scenario: a\r\nsession: b\r\n"), 0o644))

	assert.NoError(t, CompareGolden(path, []byte("scenario: a\nsession: b\n"), false))
}
