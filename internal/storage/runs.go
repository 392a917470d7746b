package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/csround/internal/report"
)

var (
	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// Run is one pipeline execution over a demo root.
type Run struct {
	ID          string
	Pipeline    string
	StartedAt   time.Time
	DemoRoot    string
	DemosFound  int
	DemosFailed int
	KnifeRounds int
	CSVPath     string
	Rows        int // filled by ListRuns
}

// SaveRun stores run and every row of tbl in one transaction. When run.ID is
// empty a new UUID is assigned. The stored id is returned.
func (db *DB) SaveRun(run Run, tbl report.Table) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	columns, err := json.Marshal(tbl.Header)
	if err != nil {
		return "", fmt.Errorf("encode columns: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs(id, pipeline, started_at, demo_root, demos_found, demos_failed, knife_rounds, csv_path, columns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Pipeline, run.StartedAt.UTC().Format(time.RFC3339), run.DemoRoot,
		run.DemosFound, run.DemosFailed, run.KnifeRounds, run.CSVPath, string(columns),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_rows(run_id, row_index, player, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, rec := range tbl.Records() {
		data, err := json.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.Exec(run.ID, i, rec["Player"], string(data)); err != nil {
			return "", fmt.Errorf("insert run row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns stored runs, newest first. An empty pipeline lists all.
func (db *DB) ListRuns(pipeline string) ([]Run, error) {
	rows, err := db.conn.Query(`
		SELECT r.id, r.pipeline, r.started_at, r.demo_root, r.demos_found, r.demos_failed,
		       r.knife_rounds, r.csv_path, COUNT(rr.row_index)
		FROM runs r
		LEFT JOIN run_rows rr ON rr.run_id = r.id
		WHERE ? = '' OR r.pipeline = ?
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.id`, pipeline, pipeline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started string
		)
		if err := rows.Scan(&r.ID, &r.Pipeline, &started, &r.DemoRoot, &r.DemosFound, &r.DemosFailed,
			&r.KnifeRounds, &r.CSVPath, &r.Rows); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", r.ID, started, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunRows returns the stored rows of one run in export order.
func (db *DB) RunRows(runID string) ([]map[string]string, error) {
	rows, err := db.conn.Query(`SELECT data FROM run_rows WHERE run_id = ? ORDER BY row_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]string
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		rec := make(map[string]string)
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decode row of run %s: %w", runID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ResolveRunID expands an id prefix to the one stored run id it matches.
func (db *DB) ResolveRunID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := db.conn.Query(`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
}

// RunTable rebuilds the exported table of one run, columns in export
// order. The table is named after the run's pipeline.
func (db *DB) RunTable(runID string) (report.Table, error) {
	var pipeline, columns string
	err := db.conn.QueryRow(`SELECT pipeline, columns FROM runs WHERE id = ?`, runID).Scan(&pipeline, &columns)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Table{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return report.Table{}, err
	}

	tbl := report.Table{Name: pipeline}
	if err := json.Unmarshal([]byte(columns), &tbl.Header); err != nil {
		return report.Table{}, fmt.Errorf("decode columns of run %s: %w", runID, err)
	}
	recs, err := db.RunRows(runID)
	if err != nil {
		return report.Table{}, err
	}
	for _, rec := range recs {
		row := make([]string, len(tbl.Header))
		for i, col := range tbl.Header {
			row[i] = rec[col]
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

// DropRun deletes a run and its rows. It reports whether the run existed.
func (db *DB) DropRun(runID string) (bool, error) {
	res, err := db.conn.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
