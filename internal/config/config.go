package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config carries every environment-driven knob read at startup.
type Config struct {
	HTTPPort        string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration
	SessionSweep  time.Duration

	SimilarLookupLimit int

	AuthRatePerSecond int
	AuthRateBurst     int
}

// Load reads the environment. UPSTREAM_BASE_URL and SESSION_SECRET are
// required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:           getenv("HTTP_PORT", "8080"),
		UpstreamBaseURL:    os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamTimeout:    getduration("UPSTREAM_TIMEOUT", 30*time.Second),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionTTL:         getduration("SESSION_TTL", 24*time.Hour),
		SessionSweep:       getduration("SESSION_SWEEP_INTERVAL", time.Minute),
		SimilarLookupLimit: getint("SIMILAR_LOOKUP_LIMIT", 4),
		AuthRatePerSecond:  getint("AUTH_RATE_PER_SECOND", 5),
		AuthRateBurst:      getint("AUTH_RATE_BURST", 10),
	}
	if cfg.UpstreamBaseURL == "" {
		return Config{}, errors.New("UPSTREAM_BASE_URL is empty")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is empty")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
