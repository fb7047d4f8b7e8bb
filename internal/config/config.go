// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	customValidation "github.com/allisson/uids/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds the graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// UIDSecret is the raw shared secret tokens are derived from.
	UIDSecret string
	// UIDSecretCiphertext is the base64 KMS-wrapped shared secret. Takes precedence over UIDSecret.
	UIDSecretCiphertext string
	// KMSKeyURI is the keeper URI used to unwrap UIDSecretCiphertext.
	KMSKeyURI string
	// UIDCipher selects the block cipher ("3des-cbc" or "blowfish-cbc").
	UIDCipher string
	// UIDPoolConcurrency is the number of pooled cipher contexts.
	UIDPoolConcurrency int
	// UIDPoolAcquireTimeout bounds the wait for a free cipher context.
	UIDPoolAcquireTimeout time.Duration
	// BatchMaxSize caps the number of items in a batch request.
	BatchMaxSize int

	// RateLimitEnabled indicates whether per-IP rate limiting of the codec endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per client IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Codec
		UIDSecret:             env.GetString("UID_SECRET", ""),
		UIDSecretCiphertext:   env.GetString("UID_SECRET_CIPHERTEXT", ""),
		KMSKeyURI:             env.GetString("KMS_KEY_URI", ""),
		UIDCipher:             env.GetString("UID_CIPHER", string(uidDomain.TripleDESCBC)),
		UIDPoolConcurrency:    env.GetInt("UID_POOL_CONCURRENCY", uidDomain.DefaultConcurrency),
		UIDPoolAcquireTimeout: env.GetDuration("UID_POOL_ACQUIRE_TIMEOUT_SECONDS", 86400, time.Second),
		BatchMaxSize:          env.GetInt("BATCH_MAX_SIZE", 100),

		// Rate Limiting (codec endpoints, per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 100.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 200),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "uids"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks value ranges. It does not require a secret, since commands
// such as create-secret run without one.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.UIDCipher, validation.Required, validation.In(
			string(uidDomain.TripleDESCBC),
			string(uidDomain.BlowfishCBC),
		)),
		validation.Field(&c.UIDSecretCiphertext, customValidation.Base64),
		validation.Field(&c.KMSKeyURI, validation.When(c.UIDSecretCiphertext != "", validation.Required)),
		validation.Field(&c.UIDPoolConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.UIDPoolAcquireTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.BatchMaxSize, validation.Required, validation.Min(1)),
		validation.Field(&c.RateLimitRequestsPerSec, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(0.0))),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1))),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled,
			validation.Required, validation.Min(1), validation.Max(65535), validation.NotIn(c.ServerPort),
		)),
	)
	return customValidation.WrapValidationError(err)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
