package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/calc/internal/display"
	"github.com/roach88/calc/internal/engine"
)

// Scenario is one executable calculator session.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Session is the fixed session ID recorded in the journal.
	// Empty means testutil.DefaultSessionID.
	Session string `yaml:"session,omitempty"`

	// Steps are fed to the engine in order.
	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Step presses a run of keys and optionally checks the resulting state.
type Step struct {
	// Keys is a whitespace separated key sequence, tokenized by keymap.
	Keys string `yaml:"keys"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a subset match over engine state. Nil fields are not checked.
type Expect struct {
	Display    *string `yaml:"display,omitempty"`
	Shown      *string `yaml:"shown,omitempty"`
	Expression *string `yaml:"expression,omitempty"`
	Operator   *string `yaml:"operator,omitempty"`
	Previous   *string `yaml:"previous,omitempty"`
	Waiting    *bool   `yaml:"waiting,omitempty"`
}

// Assertion validates the finished run.
type Assertion struct {
	// Type is one of final_state, trace_contains, trace_count, fault_raised.
	Type string `yaml:"type"`

	// Action and Arg select trace events (trace_contains, trace_count).
	// An empty Arg matches any argument.
	Action string `yaml:"action,omitempty"`
	Arg    string `yaml:"arg,omitempty"`

	// Count is the exact number of matches (trace_count) or faults
	// (fault_raised, where zero means at least one).
	Count int `yaml:"count,omitempty"`

	// Code is the fault code for fault_raised.
	Code string `yaml:"code,omitempty"`

	// Expect is the state check for final_state.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState    = "final_state"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
	AssertFaultRaised   = "fault_raised"
)

// LoadScenario reads, schema-checks and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := parseScenario(path, data)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// ParseScenario decodes a scenario held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	return parseScenario("scenario.yaml", data)
}

func parseScenario(path string, data []byte) (*Scenario, error) {
	if err := validateAgainstSchema(path, data); err != nil {
		return nil, err
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name.
// Each file's base name must equal its scenario name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if base := strings.TrimSuffix(filepath.Base(p), ".yaml"); base != s.Name {
			return nil, fmt.Errorf("%s: scenario name %q does not match file name", filepath.Base(p), s.Name)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if strings.TrimSpace(step.Keys) == "" {
			return fmt.Errorf("steps[%d]: keys is required", i)
		}
		if step.Expect != nil && step.Expect.Operator != nil && *step.Expect.Operator != "" {
			if _, err := engine.ParseOperator(*step.Expect.Operator); err != nil {
				return fmt.Errorf("steps[%d].expect: %w", i, err)
			}
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertFinalState:
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertTraceContains, AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for %s", index, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertFaultRaised:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for fault_raised", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// Diff lists every checked field that does not match s.
// An empty result means the expectation holds.
func (e *Expect) Diff(s engine.State) []string {
	if e == nil {
		return nil
	}

	var diffs []string
	check := func(field string, want *string, got string) {
		if want != nil && *want != got {
			diffs = append(diffs, fmt.Sprintf("%s: expected %q, got %q", field, *want, got))
		}
	}

	check("display", e.Display, s.Display)
	check("shown", e.Shown, display.FormatForDisplay(s.Display))
	check("expression", e.Expression, s.Expression)
	if e.Operator != nil {
		want := *e.Operator
		if op, err := engine.ParseOperator(want); err == nil {
			want = string(op)
		}
		check("operator", &want, string(s.Operator))
	}
	check("previous", e.Previous, s.PreviousValue)
	if e.Waiting != nil && *e.Waiting != s.WaitingForOperand {
		diffs = append(diffs, fmt.Sprintf("waiting: expected %t, got %t", *e.Waiting, s.WaitingForOperand))
	}
	return diffs
}
