package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/seqkit/internal/harness"
	"github.com/roach88/seqkit/internal/store"
	"github.com/roach88/seqkit/internal/testutil"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID          string `json:"run_id"`
	Scenario       string `json:"scenario"`
	Events         int    `json:"events"`
	RecordedDigest string `json:"recorded_digest"`
	ReplayedDigest string `json:"replayed_digest"`
	Deterministic  bool   `json:"deterministic"`
	Divergence     string `json:"divergence,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [run-id]",
		Short: "Re-run journaled scenarios and verify determinism",
		Long: `Re-execute journaled runs from the scenario text stored with them and
check that every trace event and the trace digest come out the same.

Without a run id, every run in the journal is replayed.

Exit codes:
  0 - All replayed runs are deterministic
  1 - At least one run diverged from its recording
  2 - Command error (journal not found, unknown run, etc.)

Examples:
  seqkit replay --db ./seqkit.db
  seqkit replay 0190a5d2-7c1e-7b7a-9d64-3f7c2b1a0e11 --db ./seqkit.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runReplay(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal path (default $"+EnvDatabase+")")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := f.Logger()
	ctx := cmd.Context()

	db := resolveDB(opts.Database)
	if db == "" {
		return NewExitError(ExitCommandError, "no journal: pass --db or set "+EnvDatabase)
	}
	st, err := store.Open(db)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var ids []string
	if runID != "" {
		ids = []string{runID}
	} else {
		runs, err := st.ListRuns(ctx, "", 0)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		// Oldest first.
		for i := len(runs) - 1; i >= 0; i-- {
			ids = append(ids, runs[i].ID)
		}
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(ids)),
		AllDeterministic: true,
	}
	for _, id := range ids {
		rr, err := replayRun(ctx, st, id)
		if errors.Is(err, store.ErrRunNotFound) {
			_ = f.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "unknown run", err)
		}
		if err != nil {
			_ = f.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to replay run "+id, err)
		}
		logger.Debug("replayed run", "run_id", id, "deterministic", rr.Deterministic)
		if !rr.Deterministic {
			result.AllDeterministic = false
		}
		result.Runs = append(result.Runs, rr)
	}
	result.TotalRuns = len(result.Runs)

	if f.isJSON() {
		if !result.AllDeterministic {
			if err := f.Failure(result, ErrCodeDiverged, "replay diverged from the journal"); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "replay diverged from the journal")
		}
		return f.Success(result)
	}

	w := f.Writer
	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, rr := range result.Runs {
		if rr.Deterministic {
			fmt.Fprintf(w, "✓ %s %s (%d events, digest %s)\n", rr.RunID, rr.Scenario, rr.Events, shortDigest(rr.ReplayedDigest))
			continue
		}
		fmt.Fprintf(w, "✗ %s %s\n", rr.RunID, rr.Scenario)
		fmt.Fprintf(w, "  recorded digest %s, replayed %s\n", shortDigest(rr.RecordedDigest), shortDigest(rr.ReplayedDigest))
		if rr.Divergence != "" {
			fmt.Fprintf(w, "  %s\n", rr.Divergence)
		}
	}
	fmt.Fprintf(w, "\nReplayed %d run(s)\n", result.TotalRuns)
	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay diverged from the journal")
	}
	return nil
}

// replayRun re-executes one journaled run under its original id and engines
// and compares it with the recording.
func replayRun(ctx context.Context, st *store.Store, id string) (ReplayRunResult, error) {
	run, err := st.ReadRun(ctx, id)
	if err != nil {
		return ReplayRunResult{}, err
	}
	recorded, err := st.ReadRunEvents(ctx, id)
	if err != nil {
		return ReplayRunResult{}, err
	}

	scenario, err := harness.ParseScenario(run.ScenarioYAML)
	if err != nil {
		return ReplayRunResult{}, fmt.Errorf("stored scenario: %w", err)
	}
	scenario.Engines = run.Engines

	h := harness.New(harness.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(run.ID)))
	result, err := h.Run(scenario)
	if err != nil {
		return ReplayRunResult{}, fmt.Errorf("re-run: %w", err)
	}

	rr := ReplayRunResult{
		RunID:          run.ID,
		Scenario:       run.ScenarioName,
		Events:         len(recorded),
		RecordedDigest: run.Digest,
		ReplayedDigest: result.Digest,
		Deterministic:  run.Digest == result.Digest,
	}
	if d, diverged := store.FirstDivergence(recorded, toEventRecords(result.Trace)); diverged {
		rr.Deterministic = false
		rr.Divergence = d.String()
	}
	return rr, nil
}
