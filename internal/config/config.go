package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds the service configuration, read from the environment with
// development defaults
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisURI    string
	JWTSecret   string
	TokenTTL    time.Duration
	TemplateDir string
	SeedDir     string
}

// Load reads configuration from the environment, warning when a default is
// used for something that matters in production
func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080", false),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017", true),
		MongoDB:     getEnv("MONGO_DB", "filingdesk", false),
		RedisURI:    getEnv("REDIS_URI", "localhost:6379", true),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production", true),
		TemplateDir: getEnv("TEMPLATE_DIR", "./templates", false),
		SeedDir:     getEnv("SEED_DIR", "./seed", false),
		TokenTTL:    24 * time.Hour,
	}

	// Remove redis:// prefix if present
	cfg.RedisURI = strings.TrimPrefix(cfg.RedisURI, "redis://")

	return cfg
}

func getEnv(key, fallback string, warn bool) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if warn {
		log.Printf("Warning: %s not set, using default", key)
	}
	return fallback
}
