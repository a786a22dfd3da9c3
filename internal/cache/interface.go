// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package cache

import (
	"context"
	"fmt"
	"time"
)

// Cacher is the storage abstraction used by the catalog client. Values are
// opaque bytes so that callers never share mutable state with the cache and
// backends can persist them as-is.
type Cacher interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	SetWithTTL(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
	GetStats() Stats
	HitRate() float64

	// Serve runs backend housekeeping until ctx is done.
	Serve(ctx context.Context) error
	String() string

	Close() error
}

// Backend selects a Cacher implementation.
type Backend string

const (
	// BackendMemory is the in-process TTL map (default).
	BackendMemory Backend = "memory"

	// BackendBadger persists entries in a Badger database so cached catalog
	// responses survive restarts.
	BackendBadger Backend = "badger"
)

// CacheConfig holds configuration for creating a cache.
type CacheConfig struct {
	Backend Backend

	// Name labels the cache in metrics and supervisor logs.
	Name string

	// TTL is the default time-to-live used by Set.
	TTL time.Duration

	// CleanupInterval is the memory sweep period or the Badger value-log
	// GC period.
	CleanupInterval time.Duration

	// Path is the Badger directory. Ignored by the memory backend.
	Path string

	// InMemory runs Badger without touching disk.
	InMemory bool
}

// NewCacher creates the configured backend.
func NewCacher(cfg CacheConfig) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.Name == "" {
		cfg.Name = "catalog"
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return New(cfg.TTL, WithName(cfg.Name), WithCleanupInterval(cfg.CleanupInterval)), nil
	case BackendBadger:
		return NewBadger(BadgerConfig{
			Path:       cfg.Path,
			InMemory:   cfg.InMemory,
			Name:       cfg.Name,
			TTL:        cfg.TTL,
			GCInterval: cfg.CleanupInterval,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
