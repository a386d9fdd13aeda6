package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	AppName  string
	LogLevel string

	// Server
	ServerAddr string

	// Storage
	StorageBackend string // "postgres" or "badger"
	DatabaseURL    string
	BadgerPath     string

	// Redis backs the rate limiter when set; otherwise limits are kept in memory.
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" by default

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Upstream APIs
	JSearch          UpstreamConfig
	LanguageIdentify UpstreamConfig
	LanguageAPIVer   string
	UpstreamTimeout  time.Duration
	UpstreamMaxBody  int64

	// OIDC bearer auth for admin routes, disabled when OIDCIssuer is empty
	OIDCIssuer   string
	OIDCClientID string

	// Features
	EnableDiagnostics bool

	// Soft-delete purge
	PurgeSchedule  string
	PurgeRetention time.Duration // 0 disables purging

	// Lookup tables
	ConfigFile string
}

// UpstreamConfig describes one RapidAPI-hosted API.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	APIHost string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load(defaultAddr, defaultName string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	env := getEnv("ENV", "development")
	return &Config{
		Env:      env,
		AppName:  getEnv("APP_NAME", defaultName),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr: getEnv("SERVER_ADDR", defaultAddr),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendPostgres)),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/hackhub?sslmode=disable"),
		BadgerPath:     getEnv("BADGER_PATH", "data/"+defaultName),

		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		JSearch: UpstreamConfig{
			BaseURL: getEnv("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com"),
			APIKey:  getEnv("JSEARCH_API_KEY", ""),
			APIHost: getEnv("JSEARCH_API_HOST", "jsearch.p.rapidapi.com"),
		},
		LanguageIdentify: UpstreamConfig{
			BaseURL: getEnv("LANGUAGE_IDENTIFY_BASE_URL", "https://language-identify.p.rapidapi.com"),
			APIKey:  getEnv("LANGUAGE_IDENTIFY_API_KEY", ""),
			APIHost: getEnv("LANGUAGE_IDENTIFY_API_HOST", "language-identify.p.rapidapi.com"),
		},
		LanguageAPIVer:  getEnv("LANGUAGE_IDENTIFY_API_VERSION", ""),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamMaxBody: int64(getEnvInt("UPSTREAM_MAX_BODY_BYTES", 16*1024*1024)),

		OIDCIssuer:   getEnv("OIDC_ISSUER", ""),
		OIDCClientID: getEnv("OIDC_CLIENT_ID", ""),

		EnableDiagnostics: getEnvBool("ENABLE_DIAGNOSTICS", env == "development" || env == "dev"),

		PurgeSchedule:  getEnv("PURGE_SCHEDULE", "@daily"),
		PurgeRetention: getEnvDuration("PURGE_RETENTION", 0),

		ConfigFile: getEnv("CONFIG_FILE", "config.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Port returns the port part of ServerAddr, used by the info endpoints.
func (c *Config) Port() string {
	if i := strings.LastIndex(c.ServerAddr, ":"); i >= 0 {
		return c.ServerAddr[i+1:]
	}
	return c.ServerAddr
}

// AuthEnabled reports whether admin routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// Logger builds the process logger: text output in development, JSON otherwise.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
