package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET. It is public,
// so Validate rejects it outside development.
const DefaultJWTSecret = "change-me-in-production-min-32-chars"

// ErrDefaultJWTSecret is returned by Validate for a non-development
// environment still using DefaultJWTSecret.
var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set outside development")

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr string
	BaseURL    string

	// TLS (optional, mTLS when TLSCAFile is set)
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string

	// Database
	DatabaseURL string

	// Redis (optional, backs the rate limiter when set)
	RedisURL string

	// Auth
	JWTSecret string
	JWTIssuer string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Listings
	DefaultPageSize int
	MaxPageSize     int

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", "starttls"

	// Notification toggles
	EmailNotifyUserOnApproval     bool
	EmailNotifyUserOnRejection    bool
	EmailNotifyModeratorsOnSubmit bool
	ModeratorEmails               []string

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "News Marketplace"
	SupportURL string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:  getEnvBool("TLS_ENABLED", false),
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/marketplace?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTIssuer:   getEnv("JWT_ISSUER", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),

		SMTPEnabled:  getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "News Marketplace"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		EmailNotifyUserOnApproval:     getEnvBool("EMAIL_NOTIFY_USER_ON_APPROVAL", true),
		EmailNotifyUserOnRejection:    getEnvBool("EMAIL_NOTIFY_USER_ON_REJECTION", true),
		EmailNotifyModeratorsOnSubmit: getEnvBool("EMAIL_NOTIFY_MODS_ON_SUBMIT", false),
		ModeratorEmails:               splitList(getEnv("MODERATOR_EMAILS", "")),

		SiteTitle:  getEnv("SITE_TITLE", "News Marketplace"),
		SupportURL: getEnv("SUPPORT_URL", ""),
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
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return n
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return d
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

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Validate reports settings the process must not start with.
func (c *Config) Validate() error {
	if !c.IsDev() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

// IsEmailEnabled returns true if SMTP is switched on and has a host and sender.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// NewLogger builds the process logger. Development uses text output, everything
// else JSON.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
