// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinequiz/internal/metrics"
)

// Entry is a cached value with its expiry.
type Entry struct {
	Data      []byte
	ExpiresAt time.Time
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a mutex-guarded in-memory key -> (value, expiry) store.
//
// Expired entries are dropped lazily by Get and in bulk by the cleanup loop
// run from Serve. New does not start any goroutine; the owner decides
// whether to supervise the cleanup loop.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	name            string
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now. Used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithCleanupInterval sets how often Serve sweeps expired entries.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// WithName sets the cache_type label used in metrics.
func WithName(name string) Option {
	return func(c *Cache) { c.name = name }
}

// New creates an in-memory cache whose Set uses ttl.
//
//	c := cache.New(30*time.Minute, cache.WithName("catalog"))
//	c.Set(key, payload)
//	if data, ok := c.Get(key); ok {
//	    // decode data
//	}
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:         make(map[string]Entry),
		name:            "memory",
		ttl:             ttl,
		cleanupInterval: 5 * time.Minute,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stats.LastCleanup = c.now()
	return c
}

// Get returns a copy of the value stored under key if it has not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the key.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.ExpiresAt) {
			delete(c.entries, key)
			c.mu.Unlock()
			c.recordEvictions(1)
		} else {
			c.mu.Unlock()
		}
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return bytes.Clone(entry.Data), true
}

// Set stores value with the default TTL.
func (c *Cache) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a copy of value that expires after ttl.
func (c *Cache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      bytes.Clone(value),
		ExpiresAt: c.now().Add(ttl),
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.setTotal(n)
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	n := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEvictions(1)
	}
	c.setTotal(n)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEvictions(evicted)
	c.setTotal(0)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache) HitRate() float64 {
	return hitRate(c.GetStats())
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}

// Serve sweeps expired entries every cleanup interval until ctx is done.
// It implements suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// String names the service in supervisor logs.
func (c *Cache) String() string {
	return "cache-janitor:" + c.name
}

// Cleanup removes all expired entries and returns how many were dropped.
func (c *Cache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	evicted := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += int64(evicted)
	c.stats.TotalKeys = int64(n)
	c.stats.LastCleanup = now
	c.statsMu.Unlock()

	metrics.RecordCacheEvictions(c.name, evicted)
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(n))
	return evicted
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	metrics.RecordCacheLookup(c.name, true)
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	metrics.RecordCacheLookup(c.name, false)
}

func (c *Cache) recordEvictions(n int) {
	if n == 0 {
		return
	}
	c.statsMu.Lock()
	c.stats.Evictions += int64(n)
	c.statsMu.Unlock()
	metrics.RecordCacheEvictions(c.name, n)
}

func (c *Cache) setTotal(n int) {
	c.statsMu.Lock()
	c.stats.TotalKeys = int64(n)
	c.statsMu.Unlock()
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(n))
}

func hitRate(s Stats) float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// GenerateKey builds a compact key from a namespace and the JSON encoding
// of params. Callers must not put credentials in params.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
