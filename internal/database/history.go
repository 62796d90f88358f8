package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nao1215/uniscout/internal/model"
)

// DefaultHistoryLimit bounds GetResultHistory when limit is not positive.
const DefaultHistoryLimit = 20

// ResultRecord is one stored comparison row.
type ResultRecord struct {
	ID        int64
	RunID     string
	MissionID string
	Timestamp time.Time
	Row       model.ComparisonRow
}

// SaveComparison stores every row of c under its run ID.
// Saving the same run twice replaces its rows.
func (s *Store) SaveComparison(ctx context.Context, c *model.Comparison) error {
	if c == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO results (run_id, mission_id, university, match_pct, final_score, row_json)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(run_id, university) DO UPDATE SET
		mission_id = excluded.mission_id,
		match_pct = excluded.match_pct,
		final_score = excluded.final_score,
		row_json = excluded.row_json,
		timestamp = CURRENT_TIMESTAMP
	`
	for _, row := range c.Rows {
		rowJSON, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to serialize row for %s: %w", row.University, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			c.RunID, c.MissionID, row.University, row.MatchPct, row.FinalScore, string(rowJSON),
		); err != nil {
			return fmt.Errorf("failed to save result for %s: %w", row.University, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// GetResultHistory returns stored rows, newest first. An empty university
// returns rows of every institution.
func (s *Store) GetResultHistory(ctx context.Context, university string, limit int) ([]ResultRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
	SELECT id, run_id, mission_id, timestamp, row_json
	FROM results
	WHERE 1=1
	`
	args := make([]any, 0, 2)
	if university != "" {
		query += " AND university = ?"
		args = append(args, university)
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get result history: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var (
			rec       ResultRecord
			timestamp string
			rowJSON   string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.MissionID, &timestamp, &rowJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(rowJSON), &rec.Row); err != nil {
			continue // Skip malformed rows
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListRuns returns run IDs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT run_id FROM results
	GROUP BY run_id
	ORDER BY MAX(id) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}
