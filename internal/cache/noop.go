package cache

import "time"

// NoopCache is used when no on-disk cache is configured. Every Get misses.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(_ string, _ time.Duration) ([]byte, bool, error) { return nil, false, nil }
func (n *NoopCache) Put(_ string, _ []byte) error                        { return nil }
func (n *NoopCache) Prune(_ time.Duration) (int64, error)                { return 0, nil }
func (n *NoopCache) Close() error                                        { return nil }
