// Package kv provides the flat string key-value persistence layer the record
// store is built on. Backends are interchangeable: postgres for durable
// deployments, redis where one is already running, memory for tests.
package kv

import "context"

// KeyValue is one key and its raw stored value, as returned by MultiGet.
type KeyValue struct {
	Key   string
	Value string
}

// Store is the generic async string key-value interface. Get reports
// ok=false for a missing key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	GetAllKeys(ctx context.Context) ([]string, error)
	MultiGet(ctx context.Context, keys []string) ([]KeyValue, error)
}
