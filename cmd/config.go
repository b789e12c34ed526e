package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is the service configuration read from the environment.
type Config struct {
	HTTPPort string `conf:"default:8082,env:HTTP_PORT"`
	Storage  string `conf:"default:postgres,env:STORAGE"`

	DBHost     string `conf:"default:localhost,env:DB_HOST"`
	DBPort     string `conf:"default:5432,env:DB_PORT"`
	DBUser     string `conf:"default:postgres,env:DB_USER"`
	DBPassword string `conf:"default:postgres,env:DB_PASSWORD,noprint"`
	DBName     string `conf:"default:marketplace,env:DB_NAME"`
	DBSslMode  string `conf:"default:disable,env:DB_SSLMODE"`

	// Empty KafkaHost logs notifications instead of publishing them.
	KafkaHost              string `conf:"env:KAFKA_HOST"`
	KafkaOrderChangedTopic string `conf:"default:order.changed,env:KAFKA_ORDER_CHANGED_TOPIC"`

	LogLevel string `conf:"default:info,env:LOG_LEVEL"`

	FulfillmentMaxAttempts int    `conf:"default:3,env:FULFILLMENT_MAX_ATTEMPTS"`
	NotificationBuffer     int    `conf:"default:1024,env:NOTIFICATION_BUFFER"`
	NotificationFlushSpec  string `conf:"default:* * * * * *,env:NOTIFICATION_FLUSH_SPEC"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// LoadConfig reads .env when present, then the environment.
// Unknown STORAGE or LOG_LEVEL values are rejected.
func LoadConfig() (Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values conf cannot constrain through tags.
func (c Config) Validate() error {
	var err error
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"STORAGE", fmt.Errorf("%q is not one of %s, %s", c.Storage, StoragePostgres, StorageMemory),
		))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"LOG_LEVEL", fmt.Errorf("%q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")),
		))
	}
	return err
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaBrokers splits KafkaHost on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// SlogLevel maps LogLevel to a slog level, info when unset.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
