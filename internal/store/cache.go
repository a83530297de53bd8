// Package store provides the per-session cache for external lookups:
// git metadata, pull request URLs, and CI check status. One SQLite file
// per session identifier in shared temporary storage. The cache is an
// optimization, never a correctness dependency: every failure path
// degrades to a miss, and concurrent invocations for the same session
// race with last-writer-wins semantics.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Entry is one cached fact.
type Entry struct {
	Discriminator string
	Value         string
	RecordedAt    int64 // epoch seconds
}

// Fresh reports whether the entry is still inside its freshness window.
// An entry recorded at T with TTL S is fresh at T+S-1 and stale at T+S.
func (e Entry) Fresh(ttl time.Duration, now time.Time) bool {
	age := now.Unix() - e.RecordedAt
	return age < int64(ttl.Seconds())
}

// Cache is a session-scoped lookup cache. A nil *Cache is valid and
// behaves as an always-miss cache.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Path returns the deterministic cache file location for a session.
// With an empty dir the shared temp location is used, so any process
// handling the session addresses the same file.
func Path(sessionID, dir string) string {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ccline")
	}
	return filepath.Join(dir, sessionID+".db")
}

// Open opens or creates the cache for a session. Callers treat a nil
// cache as a permanent miss, so open failures need no special handling.
func Open(sessionID, dir string) (*Cache, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("empty session id")
	}

	dbPath := Path(sessionID, dir)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(500)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the cache database.
func (c *Cache) Close() {
	if c == nil || c.db == nil {
		return
	}
	_ = c.db.Close()
}

// Get returns the entry for a slot, if one exists.
func (c *Cache) Get(slot string) (Entry, bool) {
	if c == nil || c.db == nil {
		return Entry{}, false
	}

	var e Entry
	err := c.db.QueryRow(
		"SELECT discriminator, value, recorded_at FROM lookups WHERE slot = ?", slot,
	).Scan(&e.Discriminator, &e.Value, &e.RecordedAt)
	if err != nil {
		return Entry{}, false
	}
	return e, true
}

// Lookup returns the cached value for a slot when it is fresh and was
// recorded for the same discriminator. A mismatched discriminator is a
// miss: stale context must force a refetch, never be returned.
func (c *Cache) Lookup(slot, discriminator string, ttl time.Duration) (string, bool) {
	e, ok := c.Get(slot)
	if !ok {
		return "", false
	}
	if e.Discriminator != discriminator {
		return "", false
	}
	if !e.Fresh(ttl, c.now()) {
		return "", false
	}
	return e.Value, true
}

// Store records a value for a slot, overwriting any previous entry.
// Best-effort: write failures are swallowed and the value is simply
// refetched on the next invocation.
func (c *Cache) Store(slot, discriminator, value string) {
	if c == nil || c.db == nil {
		return
	}
	_, _ = c.db.Exec(
		"INSERT OR REPLACE INTO lookups (slot, discriminator, value, recorded_at) VALUES (?, ?, ?, ?)",
		slot, discriminator, value, c.now().Unix(),
	)
}
