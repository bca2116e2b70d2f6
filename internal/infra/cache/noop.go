package cache

import "time"

// NoopStore always misses. It stands in for the cache in tests and in
// deployments that run without one.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (NoopStore) Get(string) (string, bool, error) { return "", false, nil }

func (NoopStore) Set(string, string, time.Duration) error { return nil }

func (NoopStore) Delete(string) error { return nil }
