package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/seqkit/internal/harness"
	"github.com/roach88/seqkit/internal/ir"
	"github.com/roach88/seqkit/internal/store"
)

// EnvDatabase names the environment variable consulted when --db is empty.
const EnvDatabase = "SEQKIT_DB"

// resolveDB returns the journal path from the flag or the environment.
// An empty result means journaling is off.
func resolveDB(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvDatabase)
}

// recordRun journals a finished run and returns its journal seq.
func recordRun(ctx context.Context, st *store.Store, raw []byte, scenario *harness.Scenario, result *harness.Result) (int64, error) {
	run := store.RunRecord{
		ID:             result.RunID,
		ScenarioName:   scenario.Name,
		ScenarioYAML:   raw,
		ScenarioDigest: ir.ScenarioDigest(raw),
		Engines:        scenario.EngineNames(),
		Pass:           result.Pass,
		Digest:         result.Digest,
		Errors:         result.Errors,
		ToolVersion:    ir.ToolVersion,
	}
	seq, err := st.WriteRun(ctx, run, toEventRecords(result.Trace))
	if err != nil {
		return 0, fmt.Errorf("failed to journal run: %w", err)
	}
	return seq, nil
}

func toEventRecords(trace []harness.TraceEvent) []store.EventRecord {
	events := make([]store.EventRecord, len(trace))
	for i, ev := range trace {
		events[i] = store.EventRecord{
			Seq:     ev.Seq,
			Engine:  ev.Engine,
			Op:      ev.Op,
			Pos:     ev.Pos,
			Value:   ev.Value,
			Outcome: ev.Outcome,
			Result:  ev.Result,
			Render:  ev.Render,
		}
	}
	return events
}

// formatEvent renders one trace event as a single text line.
func formatEvent(ev harness.TraceEvent) string {
	s := fmt.Sprintf("  #%-3d %-6s %s", ev.Seq, ev.Engine, ev.Op)
	if ev.Pos != nil {
		s += fmt.Sprintf(" @%d", *ev.Pos)
	}
	if ev.Value != nil {
		s += " " + ev.Value.String()
	}
	s += " -> " + ev.Outcome
	if ev.Result != nil {
		s += " " + ev.Result.String()
	}
	return s + "  " + ev.Render
}
