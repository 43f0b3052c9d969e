package store

import (
	"context"
	"fmt"
)

// Divergence describes the first point where two event logs differ.
type Divergence struct {
	Index    int          // position in the logs
	Recorded *EventRecord // nil if the recorded log ended first
	Replayed *EventRecord // nil if the replayed log ended first
}

// String renders the divergence for CLI output.
func (d Divergence) String() string {
	switch {
	case d.Recorded == nil:
		return fmt.Sprintf("event %d: replay produced extra event %s %s", d.Index, d.Replayed.Engine, d.Replayed.Op)
	case d.Replayed == nil:
		return fmt.Sprintf("event %d: replay ended before recorded %s %s", d.Index, d.Recorded.Engine, d.Recorded.Op)
	default:
		return fmt.Sprintf("event %d: recorded %s %s -> %s %s, replayed %s %s -> %s %s",
			d.Index,
			d.Recorded.Engine, d.Recorded.Op, d.Recorded.Outcome, d.Recorded.Render,
			d.Replayed.Engine, d.Replayed.Op, d.Replayed.Outcome, d.Replayed.Render)
	}
}

// FirstDivergence compares a recorded event log with a replayed one.
// Returns ok == false if the logs are identical.
func FirstDivergence(recorded, replayed []EventRecord) (Divergence, bool) {
	n := max(len(recorded), len(replayed))
	for i := 0; i < n; i++ {
		switch {
		case i >= len(recorded):
			return Divergence{Index: i, Replayed: &replayed[i]}, true
		case i >= len(replayed):
			return Divergence{Index: i, Recorded: &recorded[i]}, true
		case !sameEvent(recorded[i], replayed[i]):
			return Divergence{Index: i, Recorded: &recorded[i], Replayed: &replayed[i]}, true
		}
	}
	return Divergence{}, false
}

func sameEvent(a, b EventRecord) bool {
	if a.Seq != b.Seq || a.Engine != b.Engine || a.Op != b.Op ||
		a.Outcome != b.Outcome || a.Render != b.Render {
		return false
	}
	if (a.Pos == nil) != (b.Pos == nil) || (a.Pos != nil && *a.Pos != *b.Pos) {
		return false
	}
	return a.Value == b.Value && a.Result == b.Result
}

// RunsForScenarioDigest returns the ids of every run of a byte-identical
// scenario file, oldest first.
func (s *Store) RunsForScenarioDigest(ctx context.Context, digest string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM runs
		WHERE scenario_digest = ?
		ORDER BY seq ASC
	`, digest)
	if err != nil {
		return nil, fmt.Errorf("query runs by digest: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run ids: %w", err)
	}
	return ids, nil
}
