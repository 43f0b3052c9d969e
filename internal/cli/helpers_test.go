package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seqkit/internal/harness"
	"github.com/roach88/seqkit/internal/testutil"
)

const passingScenario = `name: stack
description: push then pop on both ends
engines: [linked]
steps:
  - op: push
    value: 1
  - op: push_back
    value: "b"
  - op: pop
    expect:
      value: 1
  - op: peek_last
    expect:
      value: "b"
assertions:
  - type: render
    expect: "[b]"
`

const sharedScenario = `name: shared
description: list operations on both engines
steps:
  - op: append
    value: 1
  - op: insert
    pos: 0
    value: 0
  - op: get
    pos: 5
    expect:
      error: OUT_OF_RANGE
assertions:
  - type: engines_agree
  - type: size
    count: 2
`

const failingScenario = `name: broken
description: an assertion that does not hold
engines: [array]
steps:
  - op: append
    value: 1
assertions:
  - type: size
    count: 3
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// runJournaled runs a scenario file under a fixed run id and journals it.
func runJournaled(t *testing.T, db, path, runID string) error {
	t.Helper()
	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    db,
		RunIDs:      testutil.NewFixedRunIDGenerator(runID),
	}
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	return runScenarioFile(opts, path, cmd)
}

// runPayload mirrors RunOutput without the trace, whose element values
// cannot be decoded back into ir.IRValue.
type runPayload struct {
	RunID      string                        `json:"run_id"`
	Scenario   string                        `json:"scenario"`
	Pass       bool                          `json:"pass"`
	Digest     string                        `json:"digest"`
	Errors     []string                      `json:"errors"`
	Final      map[string]harness.FinalState `json:"final"`
	JournalSeq int64                         `json:"journal_seq"`
}
