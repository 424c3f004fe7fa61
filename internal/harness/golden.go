package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where RunWithGolden keeps its fixtures, relative to the
// test's package directory.
const GoldenDir = "testdata/scenarios/golden"

// ErrGoldenMismatch is wrapped by CompareGolden when a trace differs.
var ErrGoldenMismatch = errors.New("trace does not match golden file")

// Snapshot renders a result's trace in the golden file format:
//
//	scenario: <name>
//	session: <id>
//	<seq> <action> display="..." expression="..." [fault=CODE]
func Snapshot(name string, r *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	fmt.Fprintf(&buf, "session: %s\n", r.SessionID)
	for _, ev := range r.Trace {
		fmt.Fprintf(&buf, "%d %s display=%q expression=%q", ev.Seq, ev.Label, ev.Display, ev.Expression)
		if ev.Fault != "" {
			fmt.Fprintf(&buf, " fault=%s", ev.Fault)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// RunWithGolden runs a scenario and compares its trace with
// testdata/scenarios/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}

// GoldenPath returns the golden file for a scenario loaded from dir.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, "golden", name+".golden")
}

// CompareGolden checks snapshot against the file at path outside of
// go test. With update set the file is (re)written instead.
func CompareGolden(path string, snapshot []byte, update bool) error {
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create golden dir: %w", err)
		}
		if err := os.WriteFile(path, snapshot, 0o644); err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}
		return nil
	}

	expected, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("golden file %s not found, run with --update to create it", path)
	}
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}

	expected = bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
	if bytes.Equal(expected, snapshot) {
		return nil
	}

	diff := goldie.Diff(goldie.ClassicDiff, string(snapshot), string(expected))
	return fmt.Errorf("%w: %s\n%s", ErrGoldenMismatch, path, strings.TrimRight(diff, "\n"))
}
