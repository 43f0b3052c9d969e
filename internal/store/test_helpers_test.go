package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/seqkit/internal/ir"
)

// createTestStore opens a fresh journal in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run record with minimal required fields.
func createTestRun(id, scenario string) RunRecord {
	yaml := []byte("name: " + scenario + "\n")
	return RunRecord{
		ID:             id,
		ScenarioName:   scenario,
		ScenarioYAML:   yaml,
		ScenarioDigest: ir.ScenarioDigest(yaml),
		Engines:        []string{"array", "linked"},
		Pass:           true,
		Digest:         "trace-digest-" + id,
		ToolVersion:    ir.ToolVersion,
	}
}

func intPtr(v int) *int { return &v }

// createTestEvents returns a small trace touching every optional field.
func createTestEvents() []EventRecord {
	return []EventRecord{
		{Seq: 1, Engine: "linked", Op: "append", Value: ir.IRInt(1), Outcome: "ok", Render: "[1]"},
		{Seq: 2, Engine: "linked", Op: "insert", Pos: intPtr(0), Value: ir.IRNull{}, Outcome: "ok", Render: "[null,1]"},
		{Seq: 3, Engine: "linked", Op: "get", Pos: intPtr(9), Outcome: "OUT_OF_RANGE", Render: "[null,1]"},
		{Seq: 4, Engine: "linked", Op: "pop", Outcome: "ok", Result: ir.IRNull{}, Render: "[1]"},
		{Seq: 5, Engine: "linked", Op: "set", Pos: intPtr(0), Value: ir.IRString("a"), Outcome: "ok", Result: ir.IRInt(1), Render: "[a]"},
		{Seq: 6, Engine: "linked", Op: "clear", Outcome: "ok", Render: "[]"},
		{Seq: 7, Engine: "linked", Op: "dequeue", Outcome: "absent", Render: "[]"},
		{Seq: 8, Engine: "linked", Op: "push", Value: ir.IRBool(true), Outcome: "ok", Render: "[true]"},
	}
}
