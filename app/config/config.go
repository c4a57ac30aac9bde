package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the blog service
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Tokens
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	// Listing cache
	ListCacheTTL time.Duration `yaml:"list_cache_ttl"`

	// Features
	EnableRateLimit bool `yaml:"enable_rate_limit"`
}

// Load reads configuration from environment variables, then applies
// overrides from the YAML file named by CONFIG_FILE if one is set.
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "3001")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "blog-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "blog_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "blog_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	// Token configuration
	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	tokenTTLStr := getEnvOrDefault("TOKEN_TTL", "24h")
	config.TokenTTL, err = time.ParseDuration(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	listCacheTTLStr := getEnvOrDefault("LIST_CACHE_TTL", "5s")
	config.ListCacheTTL, err = time.ParseDuration(listCacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LIST_CACHE_TTL: %w", err)
	}

	// Feature flags
	config.EnableRateLimit = getBoolEnv("ENABLE_RATE_LIMIT", true)

	// YAML overrides (optional)
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, fmt.Errorf("failed to apply config file: %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyFile merges a YAML overrides file onto the config. Zero values in
// the file leave the corresponding field alone.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	overrides := &Config{}
	if err := yaml.Unmarshal(data, overrides); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if overrides.Port != "" {
		c.Port = overrides.Port
	}
	if overrides.Host != "" {
		c.Host = overrides.Host
	}
	if overrides.LogLevel != "" {
		c.LogLevel = overrides.LogLevel
	}
	if overrides.DatabaseHost != "" {
		c.DatabaseHost = overrides.DatabaseHost
	}
	if overrides.DatabasePort != "" {
		c.DatabasePort = overrides.DatabasePort
	}
	if overrides.DatabaseName != "" {
		c.DatabaseName = overrides.DatabaseName
	}
	if overrides.DatabaseUser != "" {
		c.DatabaseUser = overrides.DatabaseUser
	}
	if overrides.DatabasePassword != "" {
		c.DatabasePassword = overrides.DatabasePassword
	}
	if overrides.DatabaseSSLMode != "" {
		c.DatabaseSSLMode = overrides.DatabaseSSLMode
	}
	if overrides.JWTSecret != "" {
		c.JWTSecret = overrides.JWTSecret
	}
	if overrides.TokenTTL != 0 {
		c.TokenTTL = overrides.TokenTTL
	}
	if overrides.ListCacheTTL != 0 {
		c.ListCacheTTL = overrides.ListCacheTTL
	}

	return nil
}

// DatabaseDSN builds the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
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

	// Short secrets make HS256 tokens forgeable
	if len(c.JWTSecret) < 8 {
		return fmt.Errorf("JWT secret must be at least 8 characters, got: %d", len(c.JWTSecret))
	}

	if c.TokenTTL < time.Minute {
		return fmt.Errorf("token TTL must be at least 1 minute, got: %v", c.TokenTTL)
	}

	if c.ListCacheTTL < 0 {
		return fmt.Errorf("list cache TTL must not be negative, got: %v", c.ListCacheTTL)
	}

	return nil
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

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
