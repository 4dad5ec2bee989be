package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Resources ResourcesConfig
	Draft     DraftConfig
	Wizard    WizardConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	LogFile        string
	AllowedOrigins []string
	RoleHint       string
}

// ResourcesConfig points at the REST collections behind the wizard.
type ResourcesConfig struct {
	BasicInfoURL string
	DetailsURL   string
	Timeout      time.Duration
	LookupSource string
}

// DraftConfig selects where drafts are kept.
type DraftConfig struct {
	Backend  string
	Dir      string
	Prefix   string
	Debounce time.Duration
	TTL      time.Duration
}

type WizardConfig struct {
	SubmitDelay   time.Duration
	ToastDuration time.Duration
}

const (
	DraftBackendMemory   = "memory"
	DraftBackendFile     = "file"
	DraftBackendPostgres = "postgres"
	DraftBackendRedis    = "redis"

	LookupSourceRemote = "remote"
	LookupSourceLocal  = "local"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", "wizard.log"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
		RoleHint:       getEnv("ROLE_HINT", "admin"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "employee_wizard"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", "1h")
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Resource configuration
	resourceTimeout, err := getEnvDuration("RESOURCE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	config.Resources = ResourcesConfig{
		BasicInfoURL: getEnv("BASIC_INFO_URL", "http://localhost:4001"),
		DetailsURL:   getEnv("DETAILS_URL", "http://localhost:4002"),
		Timeout:      resourceTimeout,
		LookupSource: getEnv("LOOKUP_SOURCE", LookupSourceRemote),
	}

	// Draft configuration
	draftDebounce, err := getEnvDuration("DRAFT_DEBOUNCE", "2s")
	if err != nil {
		return nil, err
	}
	draftTTL, err := getEnvDuration("DRAFT_TTL", "168h")
	if err != nil {
		return nil, err
	}

	config.Draft = DraftConfig{
		Backend:  getEnv("DRAFT_BACKEND", DraftBackendFile),
		Dir:      getEnv("DRAFT_DIR", ".drafts"),
		Prefix:   getEnv("DRAFT_PREFIX", "employee_form_draft"),
		Debounce: draftDebounce,
		TTL:      draftTTL,
	}

	// Wizard configuration
	submitDelay, err := getEnvDuration("SUBMIT_DELAY", "0s")
	if err != nil {
		return nil, err
	}
	toastDuration, err := getEnvDuration("TOAST_DURATION", "5s")
	if err != nil {
		return nil, err
	}

	config.Wizard = WizardConfig{
		SubmitDelay:   submitDelay,
		ToastDuration: toastDuration,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Draft.Backend {
	case DraftBackendMemory, DraftBackendRedis:
	case DraftBackendFile:
		if c.Draft.Dir == "" {
			return fmt.Errorf("DRAFT_DIR is required for the file draft backend")
		}
	case DraftBackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres draft backend")
		}
	default:
		return fmt.Errorf("unknown DRAFT_BACKEND %q", c.Draft.Backend)
	}

	switch c.Resources.LookupSource {
	case LookupSourceRemote, LookupSourceLocal:
	default:
		return fmt.Errorf("unknown LOOKUP_SOURCE %q", c.Resources.LookupSource)
	}

	if c.Resources.BasicInfoURL == "" {
		return fmt.Errorf("BASIC_INFO_URL is required")
	}
	if c.Resources.DetailsURL == "" {
		return fmt.Errorf("DETAILS_URL is required")
	}
	if c.Draft.Debounce < 0 || c.Wizard.SubmitDelay < 0 {
		return fmt.Errorf("durations must not be negative")
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
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
