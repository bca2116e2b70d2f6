package cache

import "time"

// Store is the read-through/invalidate-on-write cache consumed by services.
// It is purely a latency optimization: a store that always misses is fully
// correct, and services never let a cache failure fail a business operation.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string, ttl time.Duration) error
	Delete(key string) error
}
