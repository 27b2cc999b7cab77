package config

import (
	"fmt"
	"time"
)

// CacheConfig defines settings for the catalog response cache.  When Enabled
// is false or no Redis client could be reached, caching is skipped.  TTL is
// the lifetime of cached GET responses; every successful catalog write
// clears all entries under Prefix.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

func loadCacheConfig(e *env) CacheConfig {
	return CacheConfig{
		Enabled:      e.boolean("CACHE_ENABLED", false),
		TTL:          e.duration("CACHE_TTL", 30*time.Second),
		Prefix:       e.str("CACHE_PREFIX", "catalog"),
		MaxBodyBytes: e.integer("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	s := e.str(key, "")
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid duration for %s: %q", key, s))
		return def
	}
	return d
}
