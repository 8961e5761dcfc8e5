// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// StoreConfig selects the persistence backend.
type StoreConfig interface {
	GetStoreDriver() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
	GetShutdownTimeout() time.Duration
	GetRequestTimeout() time.Duration
}

// CatalogConfig provides settings for the stage catalog.
type CatalogConfig interface {
	GetRedisURL() string
	GetCatalogCacheTTL() time.Duration
	GetCatalogSeedFile() string
	IsCatalogCacheEnabled() bool
}

// NotesConfig provides settings for the stage notes store.
type NotesConfig interface {
	GetNoteMaxLength() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	StoreDriver     string
	DatabaseURL     string
	JWTAccessSecret string
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	RedisURL        string
	CatalogCacheTTL time.Duration
	CatalogSeedFile string
	NoteMaxLength   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// StoreConfig implementation
func (c *Config) GetStoreDriver() string { return c.StoreDriver }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string                { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool              { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string           { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool            { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64           { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int             { return c.RateLimitBurst }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }
func (c *Config) GetRequestTimeout() time.Duration  { return c.RequestTimeout }

// CatalogConfig implementation
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }
func (c *Config) GetCatalogSeedFile() string         { return c.CatalogSeedFile }
func (c *Config) IsCatalogCacheEnabled() bool        { return c.RedisURL != "" && c.CatalogCacheTTL > 0 }

// NotesConfig implementation
func (c *Config) GetNoteMaxLength() int { return c.NoteMaxLength }

// Load reads configuration from environment variables for the API server.
func Load() (*Config, error) {
	cfg := fromEnv()

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if !cfg.CORSAllowAll && len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list at least one origin when CORS_ALLOW_ALL is false")
	}
	if cfg.NoteMaxLength < 1 {
		return nil, fmt.Errorf("NOTE_MAX_LENGTH must be a positive integer")
	}

	return cfg, nil
}

// LoadCLI reads configuration for maintenance commands, which only need the
// database and the catalog seed settings.
func LoadCLI() (*Config, error) {
	cfg := fromEnv()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func fromEnv() *Config {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTAccessSecret: getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:    mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:  mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		ShutdownTimeout: mustDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")),
		RequestTimeout:  mustDuration(getEnv("REQUEST_TIMEOUT", "15s")),
		RedisURL:        getEnv("REDIS_URL", ""),
		CatalogCacheTTL: mustDuration(getEnv("CATALOG_CACHE_TTL", "5m")),
		CatalogSeedFile: getEnv("CATALOG_SEED_FILE", ""),
		NoteMaxLength:   mustInt(getEnv("NOTE_MAX_LENGTH", "1000")),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
