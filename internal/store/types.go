package store

import "github.com/roach88/seqkit/internal/ir"

// RunRecord is one journaled harness run.
type RunRecord struct {
	ID             string
	Seq            int64 // assigned by WriteRun, increases with every run
	ScenarioName   string
	ScenarioYAML   []byte // the scenario file exactly as it was run
	ScenarioDigest string
	Engines        []string
	Pass           bool
	Digest         string // trace digest
	Errors         []string
	ToolVersion    string
}

// EventRecord is one journaled trace event. Pos, Value and Result are nil
// when the operation had none.
type EventRecord struct {
	Seq     int64
	Engine  string
	Op      string
	Pos     *int
	Value   ir.IRValue
	Outcome string
	Result  ir.IRValue
	Render  string
}
