package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	NATS    NATSConfig
	App     AppConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// BackendConfig describes the catalog/order backend the console talks to
type BackendConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables pacing
}

// RedisConfig holds the optional dashboard cache settings
type RedisConfig struct {
	URL string
	// CacheTTL (DASHBOARD_CACHE_TTL) is how stale the dashboard may be when
	// redis is on: a page load inside the window reuses the cached snapshot
	// and makes no backend calls. 0 disables the cache.
	CacheTTL time.Duration
}

// NATSConfig holds the optional audit event settings
type NATSConfig struct {
	URL string
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string
	LogLevel    string
	StoreName   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("PORT", 8090),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Backend: BackendConfig{
			BaseURL:   strings.TrimRight(getEnv("BACKEND_URL", "http://127.0.0.1:8001"), "/"),
			Timeout:   getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			RateLimit: getEnvAsFloat("BACKEND_RATE_LIMIT", 0),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			CacheTTL: getEnvAsDuration("DASHBOARD_CACHE_TTL", 30*time.Second),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			StoreName:   getEnv("STORE_NAME", "VMS Leather Shoes"),
		},
	}

	if _, err := url.ParseRequestURI(config.Backend.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	if config.Backend.Timeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if config.Backend.RateLimit < 0 {
		return nil, fmt.Errorf("BACKEND_RATE_LIMIT must not be negative")
	}

	return config, nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheEnabled reports whether dashboard snapshots should go through redis
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != "" && c.Redis.CacheTTL > 0
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
