package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

type Config struct {
	// Storage drivers
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	BlobDriver    string `env:"BLOB_DRIVER" envDefault:"s3"`

	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"sightings"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Blob storage (S3, R2, MinIO)
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"auto"`
	S3Bucket          string `env:"S3_BUCKET" envDefault:"sightings"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	// Operator credential (plain or bcrypt hash)
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AdminUIDir        string `env:"ADMIN_UI_DIR"`

	// Moderation lifecycle
	PendingTTL     time.Duration `env:"PENDING_TTL" envDefault:"48h"`
	ExpiryInterval time.Duration `env:"EXPIRY_INTERVAL" envDefault:"1h"`
	BlobTTL        time.Duration `env:"BLOB_TTL" envDefault:"8760h"`
	ImageBaseURL   string        `env:"IMAGE_BASE_URL" envDefault:"/api/image/"`

	// Logging
	LogRetention         time.Duration `env:"LOG_RETENTION" envDefault:"720h"`
	LogRetentionInterval time.Duration `env:"LOG_RETENTION_INTERVAL" envDefault:"24h"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	BodyLimit   int    `env:"BODY_LIMIT" envDefault:"33554432"`

	// Error tracking
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from the environment, after loading an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD is required for the postgres storage driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.BlobDriver {
	case DriverS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 blob driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.PendingTTL <= 0 || c.ExpiryInterval <= 0 {
		return errors.New("PENDING_TTL and EXPIRY_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
