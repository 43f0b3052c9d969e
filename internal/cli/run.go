package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/seqkit/internal/harness"
	"github.com/roach88/seqkit/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Engine   string // restrict the run to one engine
	Database string

	// RunIDs overrides the run id source (for testing).
	// If nil, the harness default UUIDv7 generator is used.
	RunIDs harness.RunIDGenerator
}

// RunOutput is the data payload of the run command.
type RunOutput struct {
	RunID      string                        `json:"run_id"`
	Scenario   string                        `json:"scenario"`
	Pass       bool                          `json:"pass"`
	Digest     string                        `json:"digest"`
	Errors     []string                      `json:"errors,omitempty"`
	Final      map[string]harness.FinalState `json:"final"`
	Trace      []harness.TraceEvent          `json:"trace,omitempty"`
	JournalSeq int64                         `json:"journal_seq,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run one scenario and print its trace",
		Long: `Run a scenario against its engines and print every step.

With --db (or SEQKIT_DB) the run is recorded in the journal and can be
listed with history and re-executed with replay.

Exit codes:
  0 - Scenario passed
  1 - A step expectation or assertion failed
  2 - Command error (unreadable scenario, journal error, etc.)

Examples:
  seqkit run scenarios/queue.yaml
  seqkit run scenarios/basics.yaml --engine linked
  seqkit run scenarios/basics.yaml --db ./seqkit.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "", "run a single engine (array|linked)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this journal (default $"+EnvDatabase+")")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := f.Logger()

	if opts.Engine != "" && !slices.Contains(harness.DefaultEngines, opts.Engine) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid engine %q: must be one of %v", opts.Engine, harness.DefaultEngines))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read scenario", err)
	}
	scenario, err := harness.ParseScenario(raw)
	if err != nil {
		_ = f.Error(ErrCodeScenarioInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}
	if opts.Engine != "" {
		scenario.Engines = []string{opts.Engine}
	}

	hopts := []harness.Option{harness.WithLogger(logger)}
	if opts.RunIDs != nil {
		hopts = append(hopts, harness.WithRunIDGenerator(opts.RunIDs))
	}
	result, err := harness.New(hopts...).Run(scenario)
	if err != nil {
		_ = f.Error(ErrCodeScenarioInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "scenario could not be executed", err)
	}

	out := RunOutput{
		RunID:    result.RunID,
		Scenario: scenario.Name,
		Pass:     result.Pass,
		Digest:   result.Digest,
		Errors:   result.Errors,
		Final:    result.Final,
		Trace:    result.Trace,
	}

	if db := resolveDB(opts.Database); db != "" {
		logger.Debug("opening journal", "path", db)
		st, err := store.Open(db)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing journal", "error", closeErr)
			}
		}()

		seq, err := recordRun(cmd.Context(), st, raw, scenario, result)
		if err != nil {
			_ = f.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to journal run", err)
		}
		out.JournalSeq = seq
		logger.Info("run journaled", "run_id", result.RunID, "seq", seq)
	}

	if !f.isJSON() {
		printRunText(f, scenario, out)
	}

	if !result.Pass {
		msg := fmt.Sprintf("scenario %s failed with %d error(s)", scenario.Name, len(result.Errors))
		if f.isJSON() {
			if err := f.Failure(out, ErrCodeRunFailed, msg); err != nil {
				return err
			}
		}
		return NewExitError(ExitFailure, msg)
	}

	if f.isJSON() {
		return f.Success(out)
	}
	return nil
}

func printRunText(f *OutputFormatter, scenario *harness.Scenario, out RunOutput) {
	w := f.Writer
	fmt.Fprintf(w, "%s (run %s)\n", scenario.Name, out.RunID)
	for _, ev := range out.Trace {
		fmt.Fprintln(w, formatEvent(ev))
	}
	fmt.Fprintln(w)
	for _, engine := range scenario.EngineNames() {
		st := out.Final[engine]
		fmt.Fprintf(w, "  %-6s %s size=%d hash=%d\n", engine, st.Render, st.Size, st.Hash)
	}
	fmt.Fprintf(w, "  digest %s\n", out.Digest)
	if out.JournalSeq > 0 {
		fmt.Fprintf(w, "  journaled as #%d\n", out.JournalSeq)
	}

	if out.Pass {
		fmt.Fprintf(w, "✓ %s passed\n", scenario.Name)
		return
	}
	fmt.Fprintf(w, "✗ %s failed\n", scenario.Name)
	for _, e := range out.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
