package config

import (
	"log"
	"os"
	"time"
)

// CacheConfig defines settings for the note list cache. When Enabled is
// false or no Redis client is available, caching is disabled entirely.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// DefaultCacheTTL bounds how long a cached note list may be served
// before it expires on its own, independent of invalidation.
const DefaultCacheTTL = 30 * time.Second

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     durenv("CACHE_TTL", DefaultCacheTTL),
		Prefix:  getenv("CACHE_PREFIX", "notes"),
	}
}

// durenv parses a duration variable, keeping the default when the value
// is unset or unparseable. A zero or negative TTL would make redis keep
// entries forever, so bad input must never reach the cache as 0.
func durenv(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("invalid duration for %s: %q, using %s", key, s, def)
		return def
	}
	return d
}
