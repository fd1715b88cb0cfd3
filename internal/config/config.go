package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration of the gateway.  Each field maps
// to one environment variable.  The institute backend's base URL and the
// JWT secret are required; everything else defaults.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	BackendURL     string        // base URL of the institute reservations API
	BackendTimeout time.Duration // per-request timeout for backend calls
	JWTSecret      string        // secret used to verify bearer tokens
}

// Load reads configuration from environment variables.  Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		BackendURL:     must("BACKEND_BASE_URL"),
		BackendTimeout: parseDur(getenv("BACKEND_TIMEOUT", "10s")),
		JWTSecret:      must("JWT_SECRET"),
	}
}

// must retrieves a required environment variable.  If the variable is
// unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
