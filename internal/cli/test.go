package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/calc/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario.
type ScenarioResult struct {
	Name    string   `json:"name"`
	Pass    bool     `json:"pass"`
	Golden  string   `json:"golden,omitempty"` // "match", "updated" or "missing"
	Ignored []string `json:"ignored,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// TestResult holds the overall result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// RenderText prints one line per scenario and a summary.
func (r TestResult) RenderText(w io.Writer) error {
	if r.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}

	for _, s := range r.Scenarios {
		mark := "✓"
		if !s.Pass {
			mark = "✗"
		}
		switch s.Golden {
		case "updated":
			fmt.Fprintf(w, "%s %s (golden updated)\n", mark, s.Name)
		default:
			fmt.Fprintf(w, "%s %s\n", mark, s.Name)
		}
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(e, "\n", "\n  "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total)
	if r.Failed == 0 {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
	return nil
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run YAML scenarios against the engine.

Each scenario's step expectations and assertions are checked, and its
transition trace is compared with golden/<name>.golden next to the
scenario file when that file exists.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  calc test ./scenarios
  calc test ./scenarios --filter "division_*"
  calc test ./scenarios --update
  calc test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	info, err := os.Stat(scenariosDir)
	if os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to stat scenarios directory", err)
	}
	if !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("not a directory: %s", scenariosDir))
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	out := opts.formatter(cmd)
	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}

	for _, file := range files {
		out.VerboseLog("running %s", file)
		sr := runScenario(file, opts)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := out.Success(result); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// findScenarioFiles lists *.yaml and *.yml files under dir, optionally
// filtered by a glob on the base name without extension.
func findScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

func runScenario(file string, opts *TestOptions) ScenarioResult {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{Name: name, Errors: []string{fmt.Sprintf("load error: %v", err)}}
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return ScenarioResult{Name: scenario.Name, Errors: []string{fmt.Sprintf("execution error: %v", err)}}
	}

	sr := ScenarioResult{
		Name:    scenario.Name,
		Pass:    result.Pass,
		Ignored: result.Ignored,
		Errors:  result.Errors,
	}

	goldenPath := harness.GoldenPath(filepath.Dir(file), name)
	snapshot := harness.Snapshot(scenario.Name, result)

	switch _, statErr := os.Stat(goldenPath); {
	case opts.Update:
		if err := harness.CompareGolden(goldenPath, snapshot, true); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("golden update error: %v", err))
			return sr
		}
		sr.Golden = "updated"
	case os.IsNotExist(statErr):
		sr.Golden = "missing"
	default:
		if err := harness.CompareGolden(goldenPath, snapshot, false); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("%v (run with --update to regenerate)", err))
			return sr
		}
		sr.Golden = "match"
	}

	return sr
}
