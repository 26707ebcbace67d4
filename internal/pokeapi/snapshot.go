package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotEntry is one cached response in a portable mirror file.
type SnapshotEntry struct {
	URL       string          `json:"url"`
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Export returns every persisted entry ordered by URL.
func (s *SQLCache) Export(ctx context.Context) ([]SnapshotEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT url, body, fetched_at
		FROM http_cache
		ORDER BY url
	`)
	if err != nil {
		return nil, fmt.Errorf("cache export: %w", err)
	}
	defer rows.Close()

	var out []SnapshotEntry
	for rows.Next() {
		var (
			e    SnapshotEntry
			body []byte
		)
		if err := rows.Scan(&e.URL, &body, &e.FetchedAt); err != nil {
			return nil, fmt.Errorf("cache export scan: %w", err)
		}
		e.Body = body
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache export rows: %w", err)
	}
	return out, nil
}

// Import upserts entries in one transaction. Entries with an empty URL or a
// body that is not JSON are skipped and counted in skipped.
func (s *SQLCache) Import(ctx context.Context, entries []SnapshotEntry) (imported, skipped int, err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("cache import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO http_cache (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
		  body = excluded.body,
		  fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("cache import prepare: %w", err)
	}
	defer stmt.Close()

	fresh := make([]SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		if e.URL == "" || !json.Valid(e.Body) {
			skipped++
			continue
		}
		at := e.FetchedAt
		if at.IsZero() {
			at = s.now()
		}
		if _, err := stmt.ExecContext(ctx, e.URL, []byte(e.Body), at.UTC()); err != nil {
			return 0, 0, fmt.Errorf("cache import %s: %w", e.URL, err)
		}
		fresh = append(fresh, e)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("cache import commit: %w", err)
	}
	// keep the memory front in step with the rows just written
	for _, e := range fresh {
		_ = s.front.Put(ctx, e.URL, e.Body)
	}
	return len(fresh), skipped, nil
}
