package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	StripeSecretKey   string
	Currency          string
	PublicBaseURL     string
	UploadDir         string
	AllowedOrigin     string
	AdminPasswordHash string
	JWTSecret         string
	UploadStaleAfter  time.Duration
	AuditPollInterval time.Duration
	WorkerPoolSize    int
	MaxAuditBatch     int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultCurrency          = "inr"
	defaultPublicBaseURL     = "http://localhost:8080"
	defaultUploadDir         = "./uploads"
	defaultAllowedOrigin     = "http://localhost:3000"
	defaultJWTSecret         = "change-me-in-production"
	defaultUploadStaleAfter  = 30 * time.Minute
	defaultAuditPollInterval = time.Minute
	defaultWorkerPoolSize    = 2
	defaultMaxAuditBatch     = 16
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		StripeSecretKey:   getString(lookup, "STRIPE_SECRET_KEY", ""),
		Currency:          getString(lookup, "CURRENCY", defaultCurrency),
		PublicBaseURL:     getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		UploadDir:         getString(lookup, "UPLOAD_DIR", defaultUploadDir),
		AllowedOrigin:     getString(lookup, "ALLOWED_ORIGIN", defaultAllowedOrigin),
		AdminPasswordHash: getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		UploadStaleAfter:  getDuration(lookup, "UPLOAD_STALE_AFTER", defaultUploadStaleAfter),
		AuditPollInterval: getDuration(lookup, "AUDIT_POLL_INTERVAL", defaultAuditPollInterval),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxAuditBatch:     getInt(lookup, "AUDIT_BATCH_SIZE", defaultMaxAuditBatch),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("canteen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		staleAfterStr      = cfg.UploadStaleAfter.String()
		pollIntervalStr    = cfg.AuditPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StripeSecretKey, "stripe-key", cfg.StripeSecretKey, "Payment processor secret key")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO currency code for checkout sessions")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Base URL for uploaded proof links")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for uploaded proof images")
	fs.StringVar(&cfg.AllowedOrigin, "origin", cfg.AllowedOrigin, "Allowed CORS origin for the web client")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing admin tokens")
	fs.StringVar(&staleAfterStr, "stale-after", staleAfterStr, "Age after which a pending upload is audited")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between audit polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent audit workers")
	fs.IntVar(&cfg.MaxAuditBatch, "audit-batch", cfg.MaxAuditBatch, "Maximum orders per audit batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.UploadStaleAfter, err = time.ParseDuration(staleAfterStr); err != nil {
		return nil, fmt.Errorf("invalid stale-after: %w", err)
	}

	if cfg.AuditPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxAuditBatch <= 0 {
		cfg.MaxAuditBatch = defaultMaxAuditBatch
	}

	if cfg.UploadStaleAfter <= 0 {
		cfg.UploadStaleAfter = defaultUploadStaleAfter
	}

	if cfg.AuditPollInterval <= 0 {
		cfg.AuditPollInterval = defaultAuditPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("payment processor secret key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
