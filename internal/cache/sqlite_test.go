package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "sub", "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCache_PutGet(t *testing.T) {
	c := newTestCache(t)

	if _, ok, err := c.Get("spot:gold", time.Hour); err != nil || ok {
		t.Fatalf("expected miss on empty cache, got ok=%v err=%v", ok, err)
	}
	if err := c.Put("spot:gold", []byte(`{"rate":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, ok, err := c.Get("spot:gold", time.Hour)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(body) != `{"rate":1}` {
		t.Errorf("unexpected body %q", body)
	}

	// Overwrite keeps a single row.
	if err := c.Put("spot:gold", []byte(`{"rate":2}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, _, _ = c.Get("spot:gold", time.Hour)
	if string(body) != `{"rate":2}` {
		t.Errorf("expected overwritten body, got %q", body)
	}
}

func TestSQLiteCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	c.now = func() time.Time { return base.Add(59 * time.Minute) }
	if _, ok, _ := c.Get("k", time.Hour); !ok {
		t.Error("expected hit before ttl elapsed")
	}

	c.now = func() time.Time { return base.Add(time.Hour) }
	if _, ok, _ := c.Get("k", time.Hour); ok {
		t.Error("expected miss once ttl elapsed")
	}
}

func TestSQLiteCache_Prune(t *testing.T) {
	c := newTestCache(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return base }
	c.Put("old", []byte("1"))
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	c.Put("new", []byte("2"))

	n, err := c.Prune(time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned row, got %d", n)
	}
	if _, ok, _ := c.Get("new", time.Hour); !ok {
		t.Error("fresh entry should survive prune")
	}
	if _, ok, _ := c.Get("old", 24*time.Hour); ok {
		t.Error("stale entry should be gone")
	}
}

func TestNoopCache(t *testing.T) {
	var c Cache = NewNoopCache()
	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := c.Get("k", time.Hour); ok {
		t.Error("noop cache must always miss")
	}
}
