// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/metrics"
)

// Keys are namespaced so Clear can drop them without touching anything else
// stored in the same directory.
const badgerKeyPrefix = "cinequiz:cache:"

// BadgerConfig configures a BadgerCache.
type BadgerConfig struct {
	Path       string
	InMemory   bool
	Name       string
	TTL        time.Duration
	GCInterval time.Duration
}

// BadgerCache is a Cacher backed by Badger. Expiry uses Badger's native
// entry TTL, which has one-second resolution.
type BadgerCache struct {
	db         *badger.DB
	name       string
	ttl        time.Duration
	gcInterval time.Duration

	statsMu sync.Mutex
	stats   Stats
}

// NewBadger opens (or creates) the Badger database described by cfg.
func NewBadger(cfg BadgerConfig) (*BadgerCache, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger cache path is required")
	}
	if cfg.Name == "" {
		cfg.Name = "badger"
	}
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = 5 * time.Minute
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}

	return &BadgerCache{
		db:         db,
		name:       cfg.Name,
		ttl:        cfg.TTL,
		gcInterval: cfg.GCInterval,
		stats:      Stats{LastCleanup: time.Now()},
	}, nil
}

func badgerKey(key string) []byte {
	return []byte(badgerKeyPrefix + key)
}

// Get returns the stored value if present and not expired.
func (b *BadgerCache) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("cache", b.name).Msg("Badger cache read failed")
		}
		b.recordLookup(false)
		return nil, false
	}

	b.recordLookup(true)
	return value, true
}

// Set stores value with the default TTL.
func (b *BadgerCache) Set(key string, value []byte) {
	b.SetWithTTL(key, value, b.ttl)
}

// SetWithTTL stores value with a per-entry TTL. Write failures are logged
// and otherwise ignored; a cache miss is always a valid outcome.
func (b *BadgerCache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(badgerKey(key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		logging.Warn().Err(err).Str("cache", b.name).Msg("Badger cache write failed")
	}
}

// Delete removes key.
func (b *BadgerCache) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("cache", b.name).Msg("Badger cache delete failed")
		return
	}
	b.recordEvictions(1)
}

// Clear drops every cache key.
func (b *BadgerCache) Clear() {
	n := b.Len()
	if err := b.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		logging.Warn().Err(err).Str("cache", b.name).Msg("Badger cache clear failed")
		return
	}
	b.recordEvictions(n)
}

// Len counts live cache keys.
func (b *BadgerCache) Len() int {
	n := 0
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// GetStats returns a snapshot of the counters with a fresh key count.
func (b *BadgerCache) GetStats() Stats {
	total := int64(b.Len())
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	s := b.stats
	s.TotalKeys = total
	return s
}

// HitRate returns hits as a percentage of lookups.
func (b *BadgerCache) HitRate() float64 {
	return hitRate(b.GetStats())
}

// Serve runs value-log garbage collection every GC interval until ctx is
// done. It implements suture.Service.
func (b *BadgerCache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(b.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.runGC()
		}
	}
}

func (b *BadgerCache) runGC() {
	rounds := 0
	for {
		if err := b.db.RunValueLogGC(0.5); err != nil {
			break
		}
		rounds++
	}

	n := b.Len()
	b.statsMu.Lock()
	b.stats.LastCleanup = time.Now()
	b.statsMu.Unlock()
	metrics.CacheSize.WithLabelValues(b.name).Set(float64(n))

	if rounds > 0 {
		logging.Debug().Str("cache", b.name).Int("rounds", rounds).Msg("Badger value log GC completed")
	}
}

// String names the service in supervisor logs.
func (b *BadgerCache) String() string {
	return "cache-janitor:" + b.name
}

// Close flushes and closes the database.
func (b *BadgerCache) Close() error {
	return b.db.Close()
}

func (b *BadgerCache) recordLookup(hit bool) {
	b.statsMu.Lock()
	if hit {
		b.stats.Hits++
	} else {
		b.stats.Misses++
	}
	b.statsMu.Unlock()
	metrics.RecordCacheLookup(b.name, hit)
}

func (b *BadgerCache) recordEvictions(n int) {
	if n == 0 {
		return
	}
	b.statsMu.Lock()
	b.stats.Evictions += int64(n)
	b.statsMu.Unlock()
	metrics.RecordCacheEvictions(b.name, n)
}
