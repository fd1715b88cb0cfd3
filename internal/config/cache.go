package config

import (
	"time"
)

// CacheConfig tunes the two caching layers: the response cache wrapped
// around public browse endpoints and the invalidation-aware read cache used
// for availability and reservation lists.  When Enabled is false or no
// Redis client is available both layers turn into pass-throughs.
type CacheConfig struct {
	Enabled     bool
	ResponseTTL time.Duration // TTL for cached browse responses
	ReadTTL     time.Duration // TTL for availability/reservation entries
	Prefix      string        // namespace for response-cache keys
}

// LoadCacheConfig reads the cache settings from the environment, with
// short defaults: availability is time-sensitive, so cached copies must not
// outlive a booking interaction.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:     getenv("CACHE_ENABLED", "true") == "true",
		ResponseTTL: parseDur(getenv("CACHE_RESPONSE_TTL", "5m")),
		ReadTTL:     parseDur(getenv("CACHE_READ_TTL", "30s")),
		Prefix:      getenv("CACHE_PREFIX", "cache"),
	}
}
