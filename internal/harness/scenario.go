package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/seqkit/internal/ir"
)

// Engine names accepted in a scenario's engines list.
const (
	EngineArray  = "array"
	EngineLinked = "linked"
)

// DefaultEngines is used when a scenario does not name its engines.
var DefaultEngines = []string{EngineArray, EngineLinked}

// Scenario is a scripted sequence of container operations replayed against
// one or more engines. Every engine starts empty and receives the same steps.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Engines lists the engines to run. Empty means DefaultEngines.
	Engines []string `yaml:"engines,omitempty"`

	// Steps are applied in order to every engine.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against each engine's final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation applied to a container.
type Step struct {
	// Op is the operation name, see Ops.
	Op string `yaml:"op"`

	// Pos is the index argument for positional operations.
	// Negative values are allowed so scenarios can probe out-of-range handling.
	Pos *int `yaml:"pos,omitempty"`

	// Value is the element argument. A yaml.Node keeps an explicit
	// `value: null` apart from an omitted key.
	Value yaml.Node `yaml:"value,omitempty"`

	// Expect optionally checks the step's outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a single step.
type Expect struct {
	// Value is the expected returned element. Set means the step must succeed.
	Value yaml.Node `yaml:"value,omitempty"`

	// Absent means the step must report "no value" (empty container).
	Absent bool `yaml:"absent,omitempty"`

	// Error is the expected error code, e.g. OUT_OF_RANGE.
	Error string `yaml:"error,omitempty"`

	// Size is the expected container length after the step.
	Size *int `yaml:"size,omitempty"`
}

// Assertion checks the final state of every engine after the last step.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect is the expected rendering (render).
	Expect string `yaml:"expect,omitempty"`

	// Count is the expected length (size).
	Count *int `yaml:"count,omitempty"`

	// Hash is the expected structural hash (hash).
	Hash *int64 `yaml:"hash,omitempty"`
}

// Assertion type constants.
const (
	AssertRender       = "render"
	AssertSize         = "size"
	AssertEnginesAgree = "engines_agree"
	AssertHash         = "hash"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML held in memory.
// The replay command uses it on scenarios stored in the run journal.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// EngineNames returns the engines this scenario runs against.
func (s *Scenario) EngineNames() []string {
	if len(s.Engines) == 0 {
		return DefaultEngines
	}
	return s.Engines
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if len(s.Steps) == 0 {
		return errors.New("at least one step is required")
	}

	seen := make(map[string]bool)
	for _, e := range s.EngineNames() {
		if e != EngineArray && e != EngineLinked {
			return fmt.Errorf("unknown engine %q", e)
		}
		if seen[e] {
			return fmt.Errorf("engine %q listed twice", e)
		}
		seen[e] = true
	}

	for i, step := range s.Steps {
		sig, ok := Ops[step.Op]
		if !ok {
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if sig.LinkedOnly && seen[EngineArray] {
			return fmt.Errorf("step %d: op %q requires the linked engine only", i, step.Op)
		}
		if sig.NeedsPos && step.Pos == nil {
			return fmt.Errorf("step %d: op %q requires pos", i, step.Op)
		}
		if !sig.NeedsPos && step.Pos != nil {
			return fmt.Errorf("step %d: op %q does not take pos", i, step.Op)
		}
		if sig.NeedsValue && !hasNode(step.Value) {
			return fmt.Errorf("step %d: op %q requires value", i, step.Op)
		}
		if !sig.NeedsValue && hasNode(step.Value) {
			return fmt.Errorf("step %d: op %q does not take value", i, step.Op)
		}
		if _, err := nodeValue(step.Value); err != nil {
			return fmt.Errorf("step %d: value: %w", i, err)
		}
		if err := validateExpect(step.Expect); err != nil {
			return fmt.Errorf("step %d: expect: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}

	return nil
}

func validateExpect(e *Expect) error {
	if e == nil {
		return nil
	}
	n := 0
	if hasNode(e.Value) {
		n++
	}
	if e.Absent {
		n++
	}
	if e.Error != "" {
		n++
	}
	if n > 1 {
		return errors.New("value, absent and error are mutually exclusive")
	}
	if e.Size != nil && *e.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", *e.Size)
	}
	if _, err := nodeValue(e.Value); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertRender:
		if a.Expect == "" {
			return errors.New("render requires expect")
		}
	case AssertSize:
		if a.Count == nil || *a.Count < 0 {
			return errors.New("size requires a non-negative count")
		}
	case AssertHash:
		if a.Hash == nil {
			return errors.New("hash requires hash")
		}
	case AssertEnginesAgree:
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// hasNode reports whether the key was present in the YAML source.
func hasNode(n yaml.Node) bool {
	return n.Kind != 0
}

// nodeValue decodes a scalar element node. An absent node decodes to nil.
func nodeValue(n yaml.Node) (ir.IRValue, error) {
	if !hasNode(n) {
		return nil, nil
	}
	var raw any
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	return ir.FromAny(raw)
}
