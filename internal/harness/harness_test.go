package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seqkit/internal/ir"
	"github.com/roach88/seqkit/internal/testutil"
)

func loadFixture(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRunWithGolden_Fixtures(t *testing.T) {
	for _, name := range []string{"list_basics", "queue_roles", "boundaries", "failing"} {
		t.Run(name, func(t *testing.T) {
			scenario := loadFixture(t, name)
			_, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
		})
	}
}

func TestRun_PassingScenarios(t *testing.T) {
	for _, name := range []string{"list_basics", "queue_roles", "boundaries"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(loadFixture(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_ListBasicsFinalState(t *testing.T) {
	result, err := Run(loadFixture(t, "list_basics"))
	require.NoError(t, err)

	want := FinalState{Render: "[true,null]", Size: 2, Hash: 39122}
	assert.Equal(t, want, result.Final[EngineArray])
	assert.Equal(t, want, result.Final[EngineLinked])

	// Eight steps per engine, array first.
	require.Len(t, result.Trace, 16)
	assert.Equal(t, EngineArray, result.Trace[0].Engine)
	assert.Equal(t, EngineLinked, result.Trace[8].Engine)
	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}

	rangeEvent := result.Trace[6]
	assert.Equal(t, "insert", rangeEvent.Op)
	assert.Equal(t, "OUT_OF_RANGE", rangeEvent.Outcome)
	assert.Nil(t, rangeEvent.Result)
	assert.Equal(t, "[true,null]", rangeEvent.Render)
}

func TestRun_FailuresAreReported(t *testing.T) {
	result, err := Run(loadFixture(t, "failing"))
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "array step 0 (append): expected size 2, got 1", result.Errors[0])
	assert.Equal(t, `array step 1 (get): expected value "1", got 1`, result.Errors[1])
	assert.Equal(t, "assertion render failed on array: expected [2], got [1]", result.Errors[2])
}

func TestRun_DigestIgnoresRunID(t *testing.T) {
	scenario := loadFixture(t, "queue_roles")

	first, err := New(WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-a"))).Run(scenario)
	require.NoError(t, err)
	second, err := New(WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-b"))).Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "run-a", first.RunID)
	assert.Equal(t, "run-b", second.RunID)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Len(t, first.Digest, 64)
}

func TestRun_ReusedHarnessRestartsClock(t *testing.T) {
	h := New()
	scenario := loadFixture(t, "boundaries")

	first, err := h.Run(scenario)
	require.NoError(t, err)
	second, err := h.Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.Digest, second.Digest)
	assert.NotEqual(t, first.RunID, second.RunID, "default ids are fresh UUIDv7s")
}

func TestRun_DigestChangesWithSteps(t *testing.T) {
	a := loadFixture(t, "boundaries")
	b := loadFixture(t, "boundaries")
	b.Steps = b.Steps[:len(b.Steps)-1]

	ra, err := Run(a)
	require.NoError(t, err)
	rb, err := Run(b)
	require.NoError(t, err)
	assert.NotEqual(t, ra.Digest, rb.Digest)
}

func TestRun_RejectsInvalidScenario(t *testing.T) {
	_, err := Run(&Scenario{Name: "x", Description: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestRun_LogsSteps(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger), WithRunIDGenerator(testutil.NewFixedRunIDGenerator())).
		Run(loadFixture(t, "queue_roles"))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 9, strings.Count(out, "msg=\"step applied\""))
	assert.Contains(t, out, "scenario=queue_roles")
	assert.Contains(t, out, "run_id="+testutil.DefaultRunID)
	assert.Contains(t, out, "msg=\"scenario finished\"")
	assert.Contains(t, out, "pass=true")
}

func TestCheckExpect(t *testing.T) {
	valueNode := func(v any) Expect {
		var e Expect
		require.NoError(t, e.Value.Encode(v))
		return e
	}

	t.Run("value matches", func(t *testing.T) {
		e := valueNode(3)
		assert.Empty(t, checkExpect(&e, stepOutcome{outcome: OutcomeOK, result: ir.IRInt(3)}, 1))
	})

	t.Run("value differs by type", func(t *testing.T) {
		e := valueNode("3")
		errs := checkExpect(&e, stepOutcome{outcome: OutcomeOK, result: ir.IRInt(3)}, 1)
		assert.Equal(t, []string{`expected value "3", got 3`}, errs)
	})

	t.Run("value but absent", func(t *testing.T) {
		e := valueNode(3)
		errs := checkExpect(&e, stepOutcome{outcome: OutcomeAbsent}, 0)
		assert.Equal(t, []string{"expected value 3, got outcome absent"}, errs)
	})

	t.Run("absent", func(t *testing.T) {
		e := Expect{Absent: true}
		assert.Empty(t, checkExpect(&e, stepOutcome{outcome: OutcomeAbsent}, 0))
		errs := checkExpect(&e, stepOutcome{outcome: OutcomeOK, result: ir.IRNull{}}, 1)
		assert.Equal(t, []string{"expected no value, got outcome ok"}, errs)
	})

	t.Run("error", func(t *testing.T) {
		e := Expect{Error: "OUT_OF_RANGE"}
		assert.Empty(t, checkExpect(&e, stepOutcome{outcome: "OUT_OF_RANGE"}, 0))
		errs := checkExpect(&e, stepOutcome{outcome: OutcomeOK}, 0)
		assert.Equal(t, []string{"expected error OUT_OF_RANGE, got outcome ok"}, errs)
	})

	t.Run("size only", func(t *testing.T) {
		size := 2
		e := Expect{Size: &size}
		assert.Empty(t, checkExpect(&e, stepOutcome{outcome: OutcomeOK}, 2))
		assert.Equal(t, []string{"expected size 2, got 3"}, checkExpect(&e, stepOutcome{outcome: OutcomeOK}, 3))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, checkExpect(nil, stepOutcome{}, 0))
	})
}
