package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Document store
	DatabaseURL  string
	DatabaseName string

	// Redis (optional: activity cache + reward events)
	RedisURL         string
	ActivityCacheTTL time.Duration

	// HTTP
	AllowedOrigins []string
	WriteRateLimit int

	databaseURLSet  bool
	databaseNameSet bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8000"),
		Env:              getEnvOrDefault("ENV", "development"),
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		DatabaseName:     getEnvOrDefault("DATABASE_NAME", "literasi"),
		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		ActivityCacheTTL: getEnvAsDurationOrDefault("ACTIVITY_CACHE_TTL", 10*time.Minute),
		AllowedOrigins:   splitList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
		WriteRateLimit:   getEnvAsIntOrDefault("WRITE_RATE_LIMIT", 120),
		databaseURLSet:   os.Getenv("DATABASE_URL") != "",
		databaseNameSet:  os.Getenv("DATABASE_NAME") != "",
	}

	return cfg
}

// HasDatabaseURL reports whether DATABASE_URL was set in the environment.
func (c *Config) HasDatabaseURL() bool { return c.databaseURLSet }

// HasDatabaseName reports whether DATABASE_NAME was set in the environment.
func (c *Config) HasDatabaseName() bool { return c.databaseNameSet }

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
