package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for settings and tasks.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

// Browser drivers the research orchestrator can use.
const (
	BrowserFetch    = "fetch"
	BrowserSnapshot = "snapshot"
	BrowserRod      = "rod"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string

	StoreBackend  string
	PostgresDSN   string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPrefix    string

	BrowserDriver     string
	ChromeControlURL  string
	Headless          bool
	ExtractTimeout    time.Duration
	FetchTimeout      time.Duration
	FetchAllowPrivate bool

	CompletionURL     string
	CompletionModel   string
	CompletionTimeout time.Duration
	SettingsSecret    string
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "8080"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),

		StoreBackend:  getenv("STORE_BACKEND", StoreRedis),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "sourcing_assistant"),
		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisPrefix:   getenv("REDIS_PREFIX", "sourcing:"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "page-snapshots"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MinioPrefix:    getenv("MINIO_PREFIX", ""),

		BrowserDriver:     getenv("BROWSER_DRIVER", BrowserFetch),
		ChromeControlURL:  getenv("CHROME_CONTROL_URL", ""),
		Headless:          getenv("CHROME_HEADLESS", "true") == "true",
		ExtractTimeout:    getduration("EXTRACT_TIMEOUT", 3*time.Second),
		FetchTimeout:      getduration("FETCH_TIMEOUT", 10*time.Second),
		FetchAllowPrivate: getenv("FETCH_ALLOW_PRIVATE", "false") == "true",

		CompletionURL:     getenv("COMPLETION_URL", "https://api.groq.com/openai/v1"),
		CompletionModel:   getenv("COMPLETION_MODEL", "llama-3.3-70b-versatile"),
		CompletionTimeout: getduration("COMPLETION_TIMEOUT", 60*time.Second),
		SettingsSecret:    getenv("SETTINGS_SECRET", ""),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis, StoreMemory:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for store backend %q", c.StoreBackend)
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for store backend %q", c.StoreBackend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	switch c.BrowserDriver {
	case BrowserFetch, BrowserSnapshot, BrowserRod:
	default:
		return fmt.Errorf("unknown browser driver %q", c.BrowserDriver)
	}

	if c.ExtractTimeout <= 0 {
		return fmt.Errorf("EXTRACT_TIMEOUT must be positive")
	}
	if c.SettingsSecret != "" && len(c.SettingsSecret) < 16 {
		return fmt.Errorf("SETTINGS_SECRET must be at least 16 characters")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getduration accepts Go duration strings ("3s") or plain milliseconds.
func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
