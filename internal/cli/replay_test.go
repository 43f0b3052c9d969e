package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seqkit/internal/store"
)

func journalWithRuns(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	stack := writeFile(t, dir, "stack.yaml", passingScenario)
	shared := writeFile(t, dir, "shared.yaml", sharedScenario)

	require.NoError(t, runJournaled(t, db, stack, "run-1"))
	require.NoError(t, runJournaled(t, db, shared, "run-2"))
	return db
}

func TestReplayCommand_AllDeterministic(t *testing.T) {
	db := journalWithRuns(t)

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ run-1 stack (4 events")
	assert.Contains(t, out, "✓ run-2 shared (6 events")
	assert.Contains(t, out, "Replayed 2 run(s)")
}

func TestReplayCommand_SingleRunJSON(t *testing.T) {
	db := journalWithRuns(t)

	out, _, err := execute(t, "replay", "run-2", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.AllDeterministic)
	require.Len(t, resp.Data.Runs, 1)
	rr := resp.Data.Runs[0]
	assert.Equal(t, "shared", rr.Scenario)
	assert.Equal(t, rr.RecordedDigest, rr.ReplayedDigest)
}

func TestReplayCommand_KeepsEngineOverride(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	shared := writeFile(t, dir, "shared.yaml", sharedScenario)

	out, _, err := execute(t, "run", shared, "--engine", "array", "--db", db)
	require.NoError(t, err, out)

	_, _, err = execute(t, "replay", "--db", db)
	require.NoError(t, err)
}

func TestReplayCommand_DetectsTampering(t *testing.T) {
	db := journalWithRuns(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE run_events SET render = '[9]' WHERE run_id = 'run-1' AND seq = 2`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "replay", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ run-1 stack")
	assert.Contains(t, out, "event 1: recorded linked push_back -> ok [9], replayed linked push_back -> ok [1,b]")
	assert.Contains(t, out, "✓ run-2 shared")
}

func TestReplayCommand_UnknownRun(t *testing.T) {
	db := journalWithRuns(t)

	_, _, err := execute(t, "replay", "missing", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestReplayCommand_EmptyJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")

	out, _, err := execute(t, "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}
