package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// scenarioSchema is the contract every scenario file must satisfy.
const scenarioSchema = `
#ActionKind: "digit" | "decimal" | "backspace" | "toggle_sign" | "percentage" |
	"clear_entry" | "clear_all" | "clear" | "operator" | "calculate"

#FaultCode: "DIVISION_BY_ZERO" | "OVERFLOW" | "INVALID_OPERAND"

#Expect: {
	display?:    string
	shown?:      string
	expression?: string
	operator?:   "" | "+" | "-" | "×" | "÷"
	previous?:   string
	waiting?:    bool
}

#Step: {
	keys:    string & !=""
	expect?: #Expect
}

#FinalState: {
	type:   "final_state"
	expect: #Expect
}

#TraceContains: {
	type:   "trace_contains"
	action: #ActionKind
	arg?:   string
}

#TraceCount: {
	type:   "trace_count"
	action: #ActionKind
	arg?:   string
	count:  int & >=0
}

#FaultRaised: {
	type:   "fault_raised"
	code:   #FaultCode
	count?: int & >=1
}

#Scenario: {
	name:        =~"^[a-z0-9_]+$"
	description: string & !=""
	session?:    string & !=""
	steps: [#Step, ...#Step]
	assertions?: [...(#FinalState | #TraceContains | #TraceCount | #FaultRaised)]
}
`

// SchemaError reports a scenario file that does not satisfy the schema.
type SchemaError struct {
	Path    string
	Details string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: scenario does not match schema:\n%s", e.Path, e.Details)
}

// validateAgainstSchema checks raw YAML against #Scenario.
func validateAgainstSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema, cue.Filename("scenario_schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return &SchemaError{Path: path, Details: cueerrors.Details(err, nil)}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &SchemaError{Path: path, Details: cueerrors.Details(err, nil)}
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Path: path, Details: cueerrors.Details(err, nil)}
	}
	return nil
}
