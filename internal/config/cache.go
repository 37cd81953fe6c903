package config

import "time"

// CacheConfig defines settings for the seat inventory response cache.  When
// Enabled is false or no Redis client is configured, caching is disabled.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string // url (default) | route
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Defaults cache GET responses for
// ten seconds keyed by the concrete request path.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      envSet("CACHE_METHODS", "GET"),
        TTL:          envDur("CACHE_TTL", 10*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "url"),
        Prefix:       envStr("CACHE_PREFIX", "seatmap:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 10 * time.Second
    }
    if cfg.MaxBodyBytes < 0 {
        cfg.MaxBodyBytes = 0
    }
    return cfg
}
