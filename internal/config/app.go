package config

import (
	"os"
	"time"
)

func Addr() string {
	if addr, ok := os.LookupEnv("SWEEPER_ADDR"); ok {
		return addr
	}
	return ":8080"
}

func LogFile() string {
	return os.Getenv("SWEEPER_LOG_FILE")
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// SessionTTL is how long an untouched game survives before the registry
// sweeps it. Zero disables eviction.
func SessionTTL() time.Duration {
	value, ok := os.LookupEnv("SWEEPER_SESSION_TTL")
	if !ok {
		return 2 * time.Hour
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}
