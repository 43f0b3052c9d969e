package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WriteRun journals a run and its trace events in one transaction.
// The run's Seq is assigned here and returned; run.Seq is ignored.
//
// Writing a run id that already exists returns ErrDuplicateRun and leaves
// the journal unchanged.
func (s *Store) WriteRun(ctx context.Context, run RunRecord, events []EventRecord) (int64, error) {
	errsJSON, err := marshalErrors(run.Errors)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, scenario_name, scenario_yaml, scenario_digest, engines, pass, digest, errors, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		seq,
		run.ScenarioName,
		run.ScenarioYAML,
		run.ScenarioDigest,
		joinEngines(run.Engines),
		run.Pass,
		run.Digest,
		errsJSON,
		run.ToolVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	} else if n == 0 {
		return 0, fmt.Errorf("write run %s: %w", run.ID, ErrDuplicateRun)
	}

	if err := writeEvents(ctx, tx, run.ID, events); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func writeEvents(ctx context.Context, tx *sql.Tx, runID string, events []EventRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_events (run_id, seq, engine, op, outcome, render, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write events: prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		detail, err := marshalDetail(ev)
		if err != nil {
			return fmt.Errorf("write event %d: %w", ev.Seq, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, ev.Seq, ev.Engine, ev.Op, ev.Outcome, ev.Render, detail); err != nil {
			return fmt.Errorf("write event %d: %w", ev.Seq, err)
		}
	}
	return nil
}
