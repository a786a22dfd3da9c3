// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/metrics"
)

// StatsSource is the part of cache.Cacher the reporter reads.
type StatsSource interface {
	GetStats() cache.Stats
	HitRate() float64
}

// CacheStatsService publishes cache statistics on a fixed interval.
//
// The badger backend only counts keys when asked, so its size gauge is
// refreshed here rather than on every write.
type CacheStatsService struct {
	name     string
	source   StatsSource
	interval time.Duration
}

// NewCacheStatsService reports source under the cache_type label name.
// A non-positive interval means 30s.
func NewCacheStatsService(name string, source StatsSource, interval time.Duration) *CacheStatsService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &CacheStatsService{name: name, source: source, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheStatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.report()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *CacheStatsService) report() {
	stats := s.source.GetStats()
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(stats.TotalKeys))

	logger := logging.WithComponent(s.String())
	logger.Debug().
		Int64("keys", stats.TotalKeys).
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("evictions", stats.Evictions).
		Float64("hit_rate", s.source.HitRate()).
		Msg("Cache stats")
}

// String names the service in supervisor logs.
func (s *CacheStatsService) String() string {
	return "cache-stats:" + s.name
}
