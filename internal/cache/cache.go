package cache

import "time"

// Cache stores raw API response bodies keyed by request. Entries older than
// maxAge are treated as absent.
type Cache interface {
	Get(key string, maxAge time.Duration) ([]byte, bool, error)
	Put(key string, body []byte) error
	// Prune removes entries older than maxAge and reports how many went.
	Prune(maxAge time.Duration) (int64, error)
	Close() error
}
