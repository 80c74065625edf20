package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataBackendMemory = "memory"
	DataBackendSQL    = "sql"

	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"

	StorageDriverMemory = "memory"
	StorageDriverS3     = "s3"

	LatencySimulated = "simulated"
	LatencyRandom    = "random"
	LatencyNone      = "none"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTagline  string
	ContentPath string

	// Content store: "memory" (lost on restart) or "sql"
	DataBackend  string
	DBDriver     string
	DBConnection string

	// Session store
	SessionBackend string
	SessionSecret  string
	SessionExpiry  time.Duration
	SessionFile    string // CLI only
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Simulated network latency
	Latency    string
	LatencyMin time.Duration
	LatencyMax time.Duration

	// Mock auth sentinels
	SignupFailureMarker string
	SigninFailureEmail  string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string

	// Email
	EmailFrom        string
	ResendAPIKey     string
	ResendAudienceID string

	// Observability (optional)
	SentryDSN string

	// Storage for vault uploads
	StorageDriver          string
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic  time.Duration // Vault items are public - default: 7 days
	MaxUploadSize          int64
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Batch '26"),
		AppEnv:      envString("APP_ENV", "development"),
		AppURL:      envString("APP_URL", "http://localhost:8090"),
		Port:        envString("PORT", "8090"),
		AppTagline:  envString("APP_TAGLINE", "Four years. Countless memories. One unforgettable journey."),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Content store
		DataBackend:  envString("DATA_BACKEND", DataBackendMemory),
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/batch26.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Session store
		SessionBackend: envString("SESSION_BACKEND", SessionBackendCookie),
		SessionSecret:  envString("SESSION_SECRET", "batch26-development-secret"),
		SessionExpiry:  envDuration("SESSION_EXPIRY", 30*24*time.Hour), // 30 days
		SessionFile:    envString("SESSION_FILE", "./data/session.json"),
		RedisAddr:      envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  envString("REDIS_PASSWORD", ""),
		RedisDB:        envInt("REDIS_DB", 0),

		// Latency
		Latency:    envString("LATENCY", LatencySimulated),
		LatencyMin: envDuration("LATENCY_MIN", 300*time.Millisecond),
		LatencyMax: envDuration("LATENCY_MAX", 1500*time.Millisecond),

		// Mock auth sentinels
		SignupFailureMarker: envString("AUTH_SIGNUP_FAILURE_MARKER", "error"),
		SigninFailureEmail:  envString("AUTH_SIGNIN_FAILURE_EMAIL", "fail@test.com"),

		// OAuth (both optional - buttons are hidden when unset)
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),
		GitHubClientID:     envString("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: envString("GITHUB_CLIENT_SECRET", ""),

		// Email (RESEND_API_KEY optional in development)
		EmailFrom:        envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		ResendAudienceID: envString("RESEND_AUDIENCE_ID", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver:         envString("STORAGE_DRIVER", StorageDriverMemory),
		S3Region:              envString("S3_REGION", ""),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
		MaxUploadSize:         int64(envInt("MAX_UPLOAD_SIZE_MB", 25)) << 20,
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures secrets and required services are configured for production deployments.
func validateProduction(cfg *Config) {
	if os.Getenv("SESSION_SECRET") == "" {
		slog.Error("production deployment requires SESSION_SECRET")
		os.Exit(1)
	}
	if cfg.StorageDriver == StorageDriverS3 && (cfg.S3Bucket == "" || cfg.S3Region == "") {
		slog.Error("s3 storage requires S3_BUCKET and S3_REGION",
			"hint", "set STORAGE_DRIVER=memory for session-local uploads")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
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

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) GitHubEnabled() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		AppTagline: c.AppTagline,

		EmailFrom: c.EmailFrom,

		GoogleClientID:     c.GoogleClientID,
		GoogleClientSecret: redact(c.GoogleClientSecret),
		GitHubClientID:     c.GitHubClientID,
		GitHubClientSecret: redact(c.GitHubClientSecret),

		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint, // Needed for CSP policies
		MaxUploadSize: c.MaxUploadSize,
	}
}

// redact keeps presence information for *Enabled checks without leaking the value.
func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "redacted"
}
