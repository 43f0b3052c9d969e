package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `id, seq, scenario_name, scenario_yaml, scenario_digest, engines, pass, digest, errors, tool_version`

// ReadRun returns the run with the given id, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns journaled runs, newest first. An empty scenarioName
// lists every scenario; limit <= 0 means no limit.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, scenarioName string, limit int) ([]RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if scenarioName != "" {
		query += ` WHERE scenario_name = ?`
		args = append(args, scenarioName)
	}
	query += ` ORDER BY seq DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRunEvents returns a run's trace events ordered by seq.
// Returns an empty slice (not nil) for a run without events.
func (s *Store) ReadRunEvents(ctx context.Context, runID string) ([]EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, engine, op, outcome, render, detail
		FROM run_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	events := []EventRecord{}
	for rows.Next() {
		var ev EventRecord
		var detail string
		if err := rows.Scan(&ev.Seq, &ev.Engine, &ev.Op, &ev.Outcome, &ev.Render, &detail); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		if err := unmarshalDetail(detail, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var run RunRecord
	var engines, errsJSON string
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.ScenarioName,
		&run.ScenarioYAML,
		&run.ScenarioDigest,
		&engines,
		&run.Pass,
		&run.Digest,
		&errsJSON,
		&run.ToolVersion,
	)
	if err != nil {
		return RunRecord{}, err
	}

	run.Engines = splitEngines(engines)
	run.Errors, err = unmarshalErrors(errsJSON)
	if err != nil {
		return RunRecord{}, err
	}
	return run, nil
}
