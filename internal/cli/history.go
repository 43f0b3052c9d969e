package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/seqkit/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Scenario string
	Limit    int
}

// HistoryEntry is one run in the history listing.
type HistoryEntry struct {
	Seq      int64    `json:"seq"`
	RunID    string   `json:"run_id"`
	Scenario string   `json:"scenario"`
	Engines  []string `json:"engines"`
	Pass     bool     `json:"pass"`
	Digest   string   `json:"digest"`
	Errors   int      `json:"errors"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled runs, newest first",
		Long: `List runs recorded with --db.

Examples:
  seqkit history --db ./seqkit.db
  seqkit history --db ./seqkit.db --scenario list_basics --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal path (default $"+EnvDatabase+")")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "only runs of this scenario")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	db := resolveDB(opts.Database)
	if db == "" {
		return NewExitError(ExitCommandError, "no journal: pass --db or set "+EnvDatabase)
	}

	st, err := store.Open(db)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Scenario, opts.Limit)
	if err != nil {
		_ = f.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	entries := make([]HistoryEntry, len(runs))
	for i, r := range runs {
		entries[i] = HistoryEntry{
			Seq:      r.Seq,
			RunID:    r.ID,
			Scenario: r.ScenarioName,
			Engines:  r.Engines,
			Pass:     r.Pass,
			Digest:   r.Digest,
			Errors:   len(r.Errors),
		}
	}

	if f.isJSON() {
		return f.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(f.Writer, "No runs recorded.")
		return nil
	}
	for _, e := range entries {
		mark := "✓"
		if !e.Pass {
			mark = "✗"
		}
		fmt.Fprintf(f.Writer, "%s #%d %s %s %v %s\n", mark, e.Seq, e.RunID, e.Scenario, e.Engines, shortDigest(e.Digest))
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
