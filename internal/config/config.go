// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server     ServerConfig
	Upload     UploadConfig
	Jobs       JobsConfig
	Rate       RateLimitConfig
	Security   SecurityConfig
	Logging    LoggingConfig
	Gender     GenderConfig
	Duplicates DuplicatesConfig
	PhotoZip   PhotoZipConfig
	Audit      AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing a response (default: 5m,
	// long enough for a gender batch)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// UploadConfig holds request size limits.
type UploadConfig struct {
	// MaxFileSize is the maximum spreadsheet size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`

	// MaxPhotoSize is the maximum photo upload in bytes (default: 10MB)
	MaxPhotoSize int64 `env:"UPLOAD_MAX_PHOTO_SIZE" default:"10485760"`

	// MaxTextSize is the maximum pasted text in bytes (default: 2MB)
	MaxTextSize int64 `env:"UPLOAD_MAX_TEXT_SIZE" default:"2097152"`
}

// JobsConfig bounds the heavy tools (spreadsheets, gender batches, ZIPs).
type JobsConfig struct {
	// MaxConcurrent is the maximum number of parallel jobs (default: 4)
	MaxConcurrent int `env:"JOBS_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for a job slot (default: 15s)
	MaxWaitTime time.Duration `env:"JOBS_MAX_WAIT_TIME" default:"15s"`

	// Timeout is the maximum duration of a single job (default: 4m)
	Timeout time.Duration `env:"JOBS_TIMEOUT" default:"4m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// JobLimit is requests per minute for the job endpoints (default: 10)
	JobLimit int `env:"RATE_LIMIT_JOBS" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api with an X-API-Key header (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// GenderConfig holds settings for the name to gender lookup.
type GenderConfig struct {
	// Enabled turns the gender tool on (default: true)
	Enabled bool `env:"GENDER_ENABLED" default:"true"`

	// APIURL is the genderize-compatible endpoint
	APIURL string `env:"GENDER_API_URL" default:"https://api.genderize.io"`

	// APIKey is optional; without it the free daily quota applies
	APIKey string `env:"GENDER_API_KEY"`

	// Delay is the pause between remote lookups (default: 100ms)
	Delay time.Duration `env:"GENDER_DELAY" default:"100ms"`

	// Timeout bounds a single lookup (default: 10s)
	Timeout time.Duration `env:"GENDER_TIMEOUT" default:"10s"`

	// CachePath is the bbolt file for cached answers; empty disables caching
	CachePath string `env:"GENDER_CACHE_PATH" default:"data/genders.db"`

	// MaxLines caps names per request (default: 500)
	MaxLines int `env:"GENDER_MAX_LINES" default:"500"`
}

// DuplicatesConfig holds spreadsheet duplicate detection settings.
type DuplicatesConfig struct {
	// DefaultColumns is used by column mode when the user names none
	DefaultColumns []string `env:"DUPLICATES_DEFAULT_COLUMNS" default:"First Name,Last Name,Id Number,Birth Date,Email"`

	// SheetName is the sheet name of exported workbooks (default: Duplicadas)
	SheetName string `env:"DUPLICATES_SHEET_NAME" default:"Duplicadas"`
}

// PhotoZipConfig holds photo archive settings.
type PhotoZipConfig struct {
	// MaxNames caps files per archive (default: 2000)
	MaxNames int `env:"PHOTOZIP_MAX_NAMES" default:"2000"`
}

// AuditConfig holds tool run log settings.
type AuditConfig struct {
	// DatabaseURL is the PostgreSQL connection string. Empty keeps the run
	// log in memory and in the application log only.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 5)
	MaxConns int `env:"DB_MAX_CONNS" default:"5"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// RetentionDays is how long entries are kept (default: 90)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"90"`

	// CheckInterval is how often expired entries are purged (default: 24h)
	CheckInterval time.Duration `env:"AUDIT_CHECK_INTERVAL" default:"24h"`

	// MemoryEntries is how many runs are kept in memory without a database (default: 200)
	MemoryEntries int `env:"AUDIT_MEMORY_ENTRIES" default:"200"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Enabled reports whether a database is configured.
func (c *AuditConfig) Enabled() bool {
	return c.DatabaseURL != ""
}

// Retention returns RetentionDays as a duration.
func (c *AuditConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
