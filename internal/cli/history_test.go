package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand_ListsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	stack := writeFile(t, dir, "stack.yaml", passingScenario)
	broken := writeFile(t, dir, "broken.yaml", failingScenario)

	require.NoError(t, runJournaled(t, db, stack, "run-1"))
	require.Error(t, runJournaled(t, db, broken, "run-2"))

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "✗ #2 run-2 broken [array]")
	assert.Contains(t, out, "✓ #1 run-1 stack [linked]")
	assert.Less(t, strings.Index(out, "run-2"), strings.Index(out, "run-1"))
}

func TestHistoryCommand_JSONFilterAndLimit(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	stack := writeFile(t, dir, "stack.yaml", passingScenario)
	shared := writeFile(t, dir, "shared.yaml", sharedScenario)

	require.NoError(t, runJournaled(t, db, stack, "run-1"))
	require.NoError(t, runJournaled(t, db, shared, "run-2"))
	require.NoError(t, runJournaled(t, db, stack, "run-3"))

	out, _, err := execute(t, "history", "--db", db, "--scenario", "stack", "--limit", "1", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-3", resp.Data[0].RunID)
	assert.Equal(t, int64(3), resp.Data[0].Seq)
	assert.True(t, resp.Data[0].Pass)
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryCommand_NoJournal(t *testing.T) {
	t.Setenv(EnvDatabase, "")

	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), EnvDatabase)
}
