package db

import (
	"fmt"
	"time"
)

// Run represents a completed load
type Run struct {
	RunID      int64
	CreatedAt  time.Time
	Input      string
	PageCount  int64
	LinkCount  int64
	DurationMS int64
}

// ListRuns returns the most recent runs, newest first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, input, page_count, link_count, duration_ms
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Input, &r.PageCount, &r.LinkCount, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
