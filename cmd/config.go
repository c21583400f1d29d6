package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/parcel"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

type Config struct {
	HTTPPort string

	// DatabaseURL wins over the DB_* parts when set.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string

	JWTSecret string

	StripeSecretKey    string
	StripeBaseURL      string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers       []string
	KafkaTrackingTopic string

	StatusTransitions  parcel.TransitionPolicy
	RiderReleasePolicy parcel.ReleasePolicy

	AutoAssignEnabled  bool
	AutoAssignSchedule string
	OutboxSchedule     string
	OutboxBatchSize    int
	OutboxMaxAttempts  int

	ShutdownTimeout time.Duration
}

// LoadConfig reads the environment, after merging an optional .env file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBHost:             envOr("DB_HOST", "localhost"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOr("DB_SSLMODE", "disable"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeBaseURL:      os.Getenv("STRIPE_BASE_URL"),
		CheckoutSuccessURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTrackingTopic: envOr("KAFKA_TRACKING_TOPIC", "parcel.tracking-events"),
		AutoAssignSchedule: envOr("AUTO_ASSIGN_SCHEDULE", "*/5 * * * * *"),
		OutboxSchedule:     envOr("OUTBOX_SCHEDULE", "*/2 * * * * *"),
	}

	var errList []error

	transitions, err := parcel.ParseTransitionPolicy(os.Getenv("STATUS_TRANSITIONS"))
	errList = append(errList, err)
	cfg.StatusTransitions = transitions

	release, err := parcel.ParseReleasePolicy(os.Getenv("RIDER_RELEASE_POLICY"))
	errList = append(errList, err)
	cfg.RiderReleasePolicy = release

	cfg.AutoAssignEnabled, err = envBool("AUTO_ASSIGN_ENABLED", false)
	errList = append(errList, err)
	cfg.OutboxBatchSize, err = envInt("OUTBOX_BATCH_SIZE", 100)
	errList = append(errList, err)
	cfg.OutboxMaxAttempts, err = envInt("OUTBOX_MAX_ATTEMPTS", 10)
	errList = append(errList, err)
	cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	errList = append(errList, err)

	if cfg.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns a libpq key/value connection string.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		dsn, err := pq.ParseURL(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return dsn, nil
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode), nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := envOr(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envOr(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := envOr(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
