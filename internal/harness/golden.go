package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/seqkit/internal/ir"
)

// TraceSnapshot is the part of a run that is compared against golden files
// and hashed into Result.Digest. Run ids are deliberately absent so the
// snapshot depends only on the scenario.
type TraceSnapshot struct {
	ScenarioName string                `json:"scenario_name"`
	Trace        []TraceEvent          `json:"trace"`
	Final        map[string]FinalState `json:"final"`
}

// toCanonicalMap converts the snapshot to plain maps and slices, which is
// what ir.MarshalCanonical accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"seq":     event.Seq,
			"engine":  event.Engine,
			"op":      event.Op,
			"outcome": event.Outcome,
			"render":  event.Render,
		}
		if event.Pos != nil {
			eventMap["pos"] = *event.Pos
		}
		if event.Value != nil {
			eventMap["value"] = event.Value
		}
		if event.Result != nil {
			eventMap["result"] = event.Result
		}
		traceList[i] = eventMap
	}

	final := make(map[string]any, len(s.Final))
	for engine, state := range s.Final {
		final[engine] = map[string]any{
			"render": state.Render,
			"size":   state.Size,
			"hash":   state.Hash,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
		"final":         final,
	}
}

// MarshalSnapshot returns the canonical JSON of a run's snapshot.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Final:        result.Final,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
