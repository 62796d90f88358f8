package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/uniscout/internal/model"
)

// ContentRecord is one stored fetch result.
type ContentRecord struct {
	Key       string
	URL       string
	Kind      model.ContentKind
	Body      []byte
	FetchedAt time.Time
}

// GetContent returns the body stored under key. The boolean is false when
// nothing is stored.
func (s *Store) GetContent(ctx context.Context, key string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM contents WHERE key = ?`, key).Scan(&body)
	if isNoRows(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get content: %w", err)
	}
	return body, true, nil
}

// PutContent stores body under key, replacing any previous row.
func (s *Store) PutContent(ctx context.Context, key, url string, kind model.ContentKind, body []byte) error {
	if body == nil {
		body = []byte{}
	}

	query := `
	INSERT INTO contents (key, url, kind, body)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		url = excluded.url,
		kind = excluded.kind,
		body = excluded.body,
		fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, url, string(kind), body); err != nil {
		return fmt.Errorf("failed to put content: %w", err)
	}
	return nil
}

// GetContentRecord returns the full row stored under key, or nil.
func (s *Store) GetContentRecord(ctx context.Context, key string) (*ContentRecord, error) {
	var (
		rec       ContentRecord
		kind      string
		timestamp string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, url, kind, body, fetched_at FROM contents WHERE key = ?`, key,
	).Scan(&rec.Key, &rec.URL, &kind, &rec.Body, &timestamp)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content record: %w", err)
	}
	rec.Kind = model.ContentKind(kind)
	rec.FetchedAt = parseTimestamp(timestamp)
	return &rec, nil
}

// PurgeContent deletes rows fetched before cutoff and returns how many
// were removed.
func (s *Store) PurgeContent(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contents WHERE fetched_at < ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge content: %w", err)
	}
	return res.RowsAffected()
}
