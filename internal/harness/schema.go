package harness

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// SchemaError lists every schema violation found in a scenario file.
type SchemaError struct {
	Problems []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return "scenario does not match schema:\n  " + strings.Join(e.Problems, "\n  ")
}

// ValidateSchema checks raw scenario YAML against the embedded #Scenario
// CUE definition. Definitions are closed, so unknown keys are reported
// alongside type and enum violations.
//
// Cross-field rules (which ops need pos or value, linked-only ops) are
// checked by ParseScenario, not here.
func ValidateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return &SchemaError{Problems: []string{"document is empty"}}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("schema has no #Scenario: %w", err)
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		var problems []string
		for _, e := range cueerrors.Errors(err) {
			problems = append(problems, e.Error())
		}
		return &SchemaError{Problems: problems}
	}
	return nil
}
