package config

import "time"

// CacheConfig defines settings for the response cache middleware that
// fronts the public project listing. When Enabled is false or no Redis
// client is configured, caching is disabled. Only GET responses are
// cached; TTL bounds staleness of the listing after a mutation.
type CacheConfig struct {
	Enabled      bool          // master switch
	TTL          time.Duration // lifetime of cache entries
	Prefix       string        // Redis key namespace
	MaxBodyBytes int           // largest response body worth caching
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Second
	}
	return cfg
}
