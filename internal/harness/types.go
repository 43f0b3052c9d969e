package harness

import "github.com/roach88/seqkit/internal/ir"

// TraceEvent records one step applied to one engine.
// Pos, Value and Result are nil when the op has none.
type TraceEvent struct {
	Seq     int64      `json:"seq"`
	Engine  string     `json:"engine"`
	Op      string     `json:"op"`
	Pos     *int       `json:"pos,omitempty"`
	Value   ir.IRValue `json:"value,omitempty"`
	Outcome string     `json:"outcome"`
	Result  ir.IRValue `json:"result,omitempty"`
	Render  string     `json:"render"`
}

// FinalState is an engine's container after the last step.
type FinalState struct {
	Render string `json:"render"`
	Size   int    `json:"size"`
	Hash   int32  `json:"hash"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// RunID identifies this execution in the run journal.
	RunID string `json:"run_id"`

	// Pass is true if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds every step of every engine, engines in scenario order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Final maps engine name to its final container state.
	Final map[string]FinalState `json:"final"`

	// Digest is the domain-separated hash of the canonical trace snapshot.
	// Runs of the same scenario always produce the same digest.
	Digest string `json:"digest"`
}

// NewResult creates a passing result with no trace.
func NewResult(runID string) *Result {
	return &Result{
		RunID:  runID,
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  make(map[string]FinalState),
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
