package pokeapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Cache stores raw response bodies keyed by absolute URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.entries[key]
	return b, ok, nil
}

func (m *MemoryCache) Put(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	m.entries[key] = body
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// SQLCache persists bodies in the http_cache table with a MemoryCache in
// front of it. Entries older than TTL are treated as misses; TTL 0 keeps
// them forever.
type SQLCache struct {
	DB    *sql.DB
	TTL   time.Duration
	front *MemoryCache
	now   func() time.Time
}

func NewSQLCache(db *sql.DB, ttl time.Duration) *SQLCache {
	return &SQLCache{DB: db, TTL: ttl, front: NewMemoryCache(), now: time.Now}
}

func (s *SQLCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.TTL == 0 {
		if b, ok, _ := s.front.Get(ctx, key); ok {
			return b, true, nil
		}
	}

	row := s.DB.QueryRowContext(ctx, `
		SELECT body, fetched_at
		FROM http_cache
		WHERE url = ?
	`, key)

	var (
		body      []byte
		fetchedAt time.Time
	)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	if s.TTL > 0 && s.now().Sub(fetchedAt) > s.TTL {
		return nil, false, nil
	}

	_ = s.front.Put(ctx, key, body)
	return body, true, nil
}

func (s *SQLCache) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO http_cache (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
		  body = excluded.body,
		  fetched_at = excluded.fetched_at
	`, key, body, s.now().UTC())
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	_ = s.front.Put(ctx, key, body)
	return nil
}

// Lookup returns the cached body for a URL regardless of TTL. Used by the
// offline mirror.
func (s *SQLCache) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT body FROM http_cache WHERE url = ?`, key)
	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}
	return body, true, nil
}

// Count returns the number of persisted entries.
func (s *SQLCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM http_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
