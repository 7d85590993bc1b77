package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ricirt/dummy-predictor/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; the audit sink decides which URLs are required.
type Config struct {
	// Server
	HTTPHost        string
	HTTPPort        int
	H2C             bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Metrics listener, separate from the application port
	MetricsEnabled bool
	MetricsAddr    string

	// Logging
	LogLevel  string
	LogFormat string

	// Error reporting
	SentryDSN         string
	SentryEnvironment string
	SentryDebug       bool

	// Audit pipeline
	AuditSink         domain.AuditSink
	AuditQueueSize    int
	AuditWorkers      int
	AuditRateLimit    int
	AuditMaxRetries   int
	AuditRetryBackoff []time.Duration

	// Database (AuditSink == postgres)
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Webhook (AuditSink == webhook)
	AuditWebhookURL     string
	AuditWebhookTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPHost:        getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:        getInt("HTTP_PORT", 5000),
		H2C:             getBool("HTTP_H2C", false),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    int64(getInt("MAX_BODY_BYTES", 1<<20)),

		MetricsEnabled: getBool("METRICS_ENABLED", true),
		MetricsAddr:    getEnv("METRICS_ADDR", "0.0.0.0:9090"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "production"),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "local"),
		SentryDebug:       getBool("SENTRY_DEBUG", false),

		AuditSink:       domain.AuditSink(strings.ToLower(getEnv("AUDIT_SINK", string(domain.AuditSinkNone)))),
		AuditQueueSize:  getInt("AUDIT_QUEUE_SIZE", 1000),
		AuditWorkers:    getInt("AUDIT_WORKERS", 2),
		AuditRateLimit:  getInt("AUDIT_RATE_LIMIT", 100),
		AuditMaxRetries: getInt("AUDIT_MAX_RETRIES", 3),
		AuditRetryBackoff: []time.Duration{
			getDuration("AUDIT_RETRY_BACKOFF_1", 1*time.Second),
			getDuration("AUDIT_RETRY_BACKOFF_2", 5*time.Second),
			getDuration("AUDIT_RETRY_BACKOFF_3", 15*time.Second),
		},

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 1)),

		AuditWebhookURL:     os.Getenv("AUDIT_WEBHOOK_URL"),
		AuditWebhookTimeout: getDuration("AUDIT_WEBHOOK_TIMEOUT", 10*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// AuditEnabled reports whether predictions are recorded anywhere.
func (c *Config) AuditEnabled() bool {
	return c.AuditSink != domain.AuditSinkNone
}

func (c *Config) validate() error {
	if !c.AuditSink.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAuditSink, c.AuditSink)
	}
	switch c.AuditSink {
	case domain.AuditSinkPostgres:
		if c.DatabaseURL == "" {
			return domain.ErrMissingDatabaseURL
		}
	case domain.AuditSinkWebhook:
		if c.AuditWebhookURL == "" {
			return domain.ErrMissingWebhookURL
		}
	}
	if c.AuditQueueSize < 1 {
		c.AuditQueueSize = 1
	}
	if c.AuditWorkers < 1 {
		c.AuditWorkers = 1
	}
	if c.AuditMaxRetries < 0 {
		c.AuditMaxRetries = 0
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
