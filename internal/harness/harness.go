package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/roach88/seqkit/internal/ir"
	"github.com/roach88/seqkit/internal/seq"
	"github.com/roach88/seqkit/internal/testutil"
)

// RunIDGenerator produces the id a run is journaled under.
type RunIDGenerator interface {
	Generate() string
}

// Harness executes scenarios. Step numbers come from a deterministic clock
// that restarts for every run, so traces depend only on the scenario.
type Harness struct {
	clock  *testutil.DeterministicClock
	runIDs RunIDGenerator
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for step-level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithRunIDGenerator replaces the default UUIDv7 run id source.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(h *Harness) {
		h.runIDs = g
	}
}

// New creates a harness. Without options it logs nothing and stamps runs
// with UUIDv7 ids.
func New(opts ...Option) *Harness {
	h := &Harness{
		clock:  testutil.NewDeterministicClock(),
		runIDs: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run applies every step to a fresh container per engine, checks step
// expectations as it goes, then evaluates the scenario's assertions.
//
// A failed expectation or assertion is reported in Result.Errors; the
// returned error is reserved for scenarios that cannot be executed.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h.clock.Reset()
	result := NewResult(h.runIDs.Generate())
	logger := h.logger.With("scenario", scenario.Name, "run_id", result.RunID)

	// Events from all engines are buffered in arrival order and drained
	// into the result once every engine has finished.
	var pending seq.Queue[TraceEvent] = seq.NewLinkedList[TraceEvent]()

	engines := make([]*container, 0, len(scenario.EngineNames()))
	for _, name := range scenario.EngineNames() {
		c, err := newContainer(name)
		if err != nil {
			return nil, err
		}

		for i, step := range scenario.Steps {
			ev, err := h.executeStep(c, i, step, result)
			if err != nil {
				return nil, fmt.Errorf("engine %s: step %d: %w", name, i, err)
			}
			logger.Debug("step applied",
				"engine", name,
				"seq", ev.Seq,
				"op", ev.Op,
				"outcome", ev.Outcome,
				"render", ev.Render)
			pending.Enqueue(ev)
		}

		result.Final[name] = FinalState{
			Render: c.list.String(),
			Size:   c.list.Len(),
			Hash:   c.list.HashCode(),
		}
		engines = append(engines, c)
	}

	for {
		ev, ok := pending.Dequeue()
		if !ok {
			break
		}
		result.Trace = append(result.Trace, ev)
	}

	for _, err := range evaluateAssertions(scenario.Assertions, engines) {
		result.AddError(err.Error())
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Trace:        result.Trace,
		Final:        result.Final,
	}
	digest, err := ir.TraceDigest(snapshot.toCanonicalMap())
	if err != nil {
		return nil, fmt.Errorf("failed to compute trace digest: %w", err)
	}
	result.Digest = digest

	logger.Debug("scenario finished",
		"pass", result.Pass,
		"events", len(result.Trace),
		"errors", len(result.Errors))

	return result, nil
}

// executeStep applies one step and records any expectation failure.
func (h *Harness) executeStep(c *container, index int, step Step, result *Result) (TraceEvent, error) {
	value, err := nodeValue(step.Value)
	if err != nil {
		return TraceEvent{}, err
	}

	pos := 0
	if step.Pos != nil {
		pos = *step.Pos
	}

	out, err := c.apply(step.Op, pos, value)
	if err != nil {
		return TraceEvent{}, err
	}

	ev := TraceEvent{
		Seq:     h.clock.Next(),
		Engine:  c.name,
		Op:      step.Op,
		Pos:     step.Pos,
		Value:   value,
		Outcome: out.outcome,
		Result:  out.result,
		Render:  c.list.String(),
	}

	for _, msg := range checkExpect(step.Expect, out, c.list.Len()) {
		result.AddError(fmt.Sprintf("%s step %d (%s): %s", c.name, index, step.Op, msg))
	}

	return ev, nil
}

// checkExpect compares a step outcome with its expectation.
func checkExpect(e *Expect, out stepOutcome, size int) []string {
	if e == nil {
		return nil
	}

	var errs []string
	switch {
	case hasNode(e.Value):
		want, err := nodeValue(e.Value)
		if err != nil {
			errs = append(errs, err.Error())
			break
		}
		if out.outcome != OutcomeOK {
			errs = append(errs, fmt.Sprintf("expected value %s, got outcome %s", describe(want), out.outcome))
		} else if out.result != want {
			errs = append(errs, fmt.Sprintf("expected value %s, got %s", describe(want), describe(out.result)))
		}
	case e.Absent:
		if out.outcome != OutcomeAbsent {
			errs = append(errs, fmt.Sprintf("expected no value, got outcome %s", out.outcome))
		}
	case e.Error != "":
		if out.outcome != e.Error {
			errs = append(errs, fmt.Sprintf("expected error %s, got outcome %s", e.Error, out.outcome))
		}
	}

	if e.Size != nil && *e.Size != size {
		errs = append(errs, fmt.Sprintf("expected size %d, got %d", *e.Size, size))
	}
	return errs
}

// describe renders a value unambiguously for error messages.
func describe(v ir.IRValue) string {
	switch val := v.(type) {
	case nil:
		return "nothing"
	case ir.IRString:
		return strconv.Quote(string(val))
	default:
		return val.String()
	}
}
