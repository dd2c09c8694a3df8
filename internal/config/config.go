package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Payroll    PayrollConfig
	Onboarding OnboardingConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// PayrollConfig holds payroll runtime settings. The statutory policy lives in PolicyFile.
type PayrollConfig struct {
	PolicyFile    string
	BulkWorkers   int
	BulkRateLimit float64
	BulkRateBurst int
	SummaryTTL    time.Duration
}

type OnboardingConfig struct {
	LockTimeout time.Duration
}

// RedisConfig - an empty Addr disables the summary cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig - an empty Brokers list disables the outbox relay
type KafkaConfig struct {
	Brokers       []string
	TopicPrefix   string
	RelayInterval time.Duration
	RelayBatch    int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "hris_payroll"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(dbMaxConns),
		AutoMigrate: getEnv("DB_AUTO_MIGRATE", "false") == "true",
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll runtime
	bulkWorkers, err := getEnvInt("PAYROLL_BULK_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	bulkBurst, err := getEnvInt("PAYROLL_BULK_RATE_BURST", 2)
	if err != nil {
		return nil, err
	}
	bulkRate, err := strconv.ParseFloat(getEnv("PAYROLL_BULK_RATE_PER_MINUTE", "6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BULK_RATE_PER_MINUTE: %w", err)
	}
	summaryTTL, err := getEnvDuration("PAYROLL_SUMMARY_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		PolicyFile:    getEnv("PAYROLL_POLICY_FILE", "config/payroll.yaml"),
		BulkWorkers:   bulkWorkers,
		BulkRateLimit: bulkRate / 60,
		BulkRateBurst: bulkBurst,
		SummaryTTL:    summaryTTL,
	}

	// Onboarding
	lockTimeout, err := getEnvDuration("ONBOARDING_LOCK_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	config.Onboarding = OnboardingConfig{LockTimeout: lockTimeout}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Kafka configuration
	relayInterval, err := getEnvDuration("KAFKA_RELAY_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	relayBatch, err := getEnvInt("KAFKA_RELAY_BATCH", 50)
	if err != nil {
		return nil, err
	}
	config.Kafka = KafkaConfig{
		Brokers:       getEnvSlice("KAFKA_BROKERS"),
		TopicPrefix:   getEnv("KAFKA_TOPIC_PREFIX", "hris"),
		RelayInterval: relayInterval,
		RelayBatch:    relayBatch,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.BulkWorkers < 1 {
		return fmt.Errorf("PAYROLL_BULK_WORKERS must be at least 1")
	}
	if c.Payroll.BulkRateLimit <= 0 || c.Payroll.BulkRateBurst < 1 {
		return fmt.Errorf("PAYROLL_BULK_RATE_PER_MINUTE and PAYROLL_BULK_RATE_BURST must be positive")
	}
	if c.Onboarding.LockTimeout <= 0 {
		return fmt.Errorf("ONBOARDING_LOCK_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
