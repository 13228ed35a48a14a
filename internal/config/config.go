package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver      string
	DBConnection  string
	DBAutoMigrate bool

	// Identity provider (Clerk)
	ClerkJWTKey            string
	ClerkAuthorizedParties []string
	ClerkWebhookSecret     string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Abuse protection and caching
	QuestionRateLimit  int
	QuestionRateWindow time.Duration
	ProfileCacheSize   int
	ProfileCacheTTL    time.Duration

	// Only set behind a reverse proxy that overwrites X-Forwarded-For
	TrustProxyHeaders bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Askbox"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // Required: base URL for email links
		Port:    envString("PORT", "8090"),

		// Database. busy_timeout and _txlock are added by db.Init when missing.
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/askbox.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Disable when migrations run as a separate deploy step (do migrate up)
		DBAutoMigrate: envBool("DB_AUTO_MIGRATE", true),

		// Identity provider (all required in production)
		ClerkJWTKey:            envString("CLERK_JWT_KEY", ""),
		ClerkAuthorizedParties: envList("CLERK_AUTHORIZED_PARTIES"),
		ClerkWebhookSecret:     envString("CLERK_WEBHOOK_SECRET", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		QuestionRateLimit:  envInt("QUESTION_RATE_LIMIT", 10),
		QuestionRateWindow: envDuration("QUESTION_RATE_WINDOW", time.Minute),
		ProfileCacheSize:   envInt("PROFILE_CACHE_SIZE", 1024),
		ProfileCacheTTL:    envDuration("PROFILE_CACHE_TTL", 5*time.Minute),

		TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows some services (like email) to use fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	missing := cfg.missingForProduction()
	if len(missing) > 0 {
		slog.Error("production deployment requires identity and email configuration",
			"missing", missing,
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func (c *Config) missingForProduction() []string {
	var missing []string
	if c.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if c.ClerkJWTKey == "" {
		missing = append(missing, "CLERK_JWT_KEY")
	}
	if c.ClerkWebhookSecret == "" {
		missing = append(missing, "CLERK_WEBHOOK_SECRET")
	}
	return missing
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping empty items.
func envList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to log at startup.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,

		DBDriver: c.DBDriver,

		ClerkAuthorizedParties: c.ClerkAuthorizedParties,

		EmailFrom: c.EmailFrom,

		QuestionRateLimit:  c.QuestionRateLimit,
		QuestionRateWindow: c.QuestionRateWindow,
		ProfileCacheSize:   c.ProfileCacheSize,
		ProfileCacheTTL:    c.ProfileCacheTTL,

		TrustProxyHeaders: c.TrustProxyHeaders,
	}
}
