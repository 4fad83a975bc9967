package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the product service.
// It is loaded once at startup and must be treated as read-only afterwards.
type Config struct {
	// Server
	Port     string `yaml:"port" env:"PORT" default:"9000"`
	Host     string `yaml:"host" env:"HOST" default:"0.0.0.0"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `yaml:"db_min_conns" env:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `yaml:"db_max_conns" env:"DB_MAX_CONNS" default:"5"`

	// Tokens
	SecretKeyJWT             string        `yaml:"secret_key_jwt" env:"SECRET_KEY_JWT" required:"true"`
	AccessTokenExpire        time.Duration `yaml:"-" env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	AccessTokenExpireRefresh time.Duration `yaml:"-" env:"ACCESS_TOKEN_EXPIRE_MINUTES_REFRESH" required:"true"`

	// CORS
	AllowedOrigins     []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" default:"*"`
	AllowedMethods     []string `yaml:"allowed_methods" env:"ALLOWED_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders     []string `yaml:"allowed_headers" env:"ALLOWED_HEADERS" default:"Authorization,Content-Type"`
	AllowedCredentials bool     `yaml:"allowed_credentials" env:"ALLOWED_CREDENTIALS" default:"false"`

	// Features
	EnableMetrics bool `yaml:"-" env:"ENABLE_METRICS" default:"true"`
}

// fileConfig mirrors the YAML file layout. Token lifetimes are expressed in
// minutes there, the same unit as the environment variables.
type fileConfig struct {
	Config                          `yaml:",inline"`
	AccessTokenExpireMinutes        *int  `yaml:"access_token_expire_minutes"`
	AccessTokenExpireMinutesRefresh *int  `yaml:"access_token_expire_minutes_refresh"`
	EnableMetrics                   *bool `yaml:"enable_metrics"`
}

const minSecretLength = 16

// Load reads configuration from environment variables. When CONFIG_FILE is
// set, the YAML file it names provides defaults that the environment overrides.
func Load() (*Config, error) {
	defaults, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", firstNonEmpty(defaults.Port, "9000"))
	config.Host = getEnvOrDefault("HOST", firstNonEmpty(defaults.Host, "0.0.0.0"))
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", firstNonEmpty(defaults.LogLevel, "info"))

	// Database configuration
	config.DatabaseURL = getEnvOrDefault("DATABASE_URL", defaults.DatabaseURL)
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	minConns, err := getInt32Env("DB_MIN_CONNS", nonZero(defaults.DBMinConns, 1))
	if err != nil {
		return nil, err
	}
	config.DBMinConns = minConns

	maxConns, err := getInt32Env("DB_MAX_CONNS", nonZero(defaults.DBMaxConns, 5))
	if err != nil {
		return nil, err
	}
	config.DBMaxConns = maxConns

	// Token configuration
	config.SecretKeyJWT = getEnvOrDefault("SECRET_KEY_JWT", defaults.SecretKeyJWT)
	if config.SecretKeyJWT == "" {
		return nil, fmt.Errorf("SECRET_KEY_JWT is required")
	}

	refresh, ok, err := getMinutesEnv("ACCESS_TOKEN_EXPIRE_MINUTES_REFRESH", defaults.AccessTokenExpireMinutesRefresh)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES_REFRESH is required")
	}
	config.AccessTokenExpireRefresh = refresh

	// An absent access lifetime falls back to the refresh lifetime.
	// An explicit zero is kept and produces tokens that expire on issuance.
	access, ok, err := getMinutesEnv("ACCESS_TOKEN_EXPIRE_MINUTES", defaults.AccessTokenExpireMinutes)
	if err != nil {
		return nil, err
	}
	if !ok {
		access = refresh
	}
	config.AccessTokenExpire = access

	// CORS configuration
	config.AllowedOrigins = getListEnv("ALLOWED_ORIGINS", nonEmptyList(defaults.AllowedOrigins, []string{"*"}))
	config.AllowedMethods = getListEnv("ALLOWED_METHODS", nonEmptyList(defaults.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}))
	config.AllowedHeaders = getListEnv("ALLOWED_HEADERS", nonEmptyList(defaults.AllowedHeaders, []string{"Authorization", "Content-Type"}))
	config.AllowedCredentials = getBoolEnv("ALLOWED_CREDENTIALS", defaults.AllowedCredentials)

	// Feature flags
	enableMetrics := true
	if defaults.EnableMetrics != nil {
		enableMetrics = *defaults.EnableMetrics
	}
	config.EnableMetrics = getBoolEnv("ENABLE_METRICS", enableMetrics)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.DBMinConns < 0 || c.DBMaxConns < 1 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid pool bounds: min=%d max=%d", c.DBMinConns, c.DBMaxConns)
	}

	if len(c.SecretKeyJWT) < minSecretLength {
		return fmt.Errorf("SECRET_KEY_JWT must be at least %d bytes, got: %d", minSecretLength, len(c.SecretKeyJWT))
	}

	if c.AccessTokenExpire < 0 || c.AccessTokenExpireRefresh < 0 {
		return fmt.Errorf("token lifetimes must not be negative")
	}

	return nil
}

type fileDefaults struct {
	Config
	AccessTokenExpireMinutes        *int
	AccessTokenExpireMinutesRefresh *int
	EnableMetrics                   *bool
}

func loadFile(path string) (fileDefaults, error) {
	if path == "" {
		return fileDefaults{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fileDefaults{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fileDefaults{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return fileDefaults{
		Config:                          fc.Config,
		AccessTokenExpireMinutes:        fc.AccessTokenExpireMinutes,
		AccessTokenExpireMinutesRefresh: fc.AccessTokenExpireMinutesRefresh,
		EnableMetrics:                   fc.EnableMetrics,
	}, nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return int32(parsed), nil
}

// getMinutesEnv reports whether the value was present at all, so callers can
// tell an absent setting from an explicit zero.
func getMinutesEnv(key string, fallback *int) (time.Duration, bool, error) {
	value, present := os.LookupEnv(key)
	if !present || value == "" {
		if fallback == nil {
			return 0, false, nil
		}
		return time.Duration(*fallback) * time.Minute, true, nil
	}

	minutes, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(minutes) * time.Minute, true, nil
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonZero(value, defaultValue int32) int32 {
	if value != 0 {
		return value
	}
	return defaultValue
}

func nonEmptyList(value, defaultValue []string) []string {
	if len(value) > 0 {
		return value
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
