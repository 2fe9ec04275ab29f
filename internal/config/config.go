// Package config loads process configuration from the environment and opens
// the database backends.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/Donny1114/Device-Management-System/internal/utils"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	ConnectRetries int
}

// AuthConfig holds credential and token settings
type AuthConfig struct {
	PasswordScheme     string
	JWTSecret          string
	JWTExpirationHours int64
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Driver = getEnv("DB_DRIVER", DriverMySQL)
	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.Database.Driver, DriverMySQL, DriverPostgres)
	}

	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")
	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	defaultPort := 3306
	if cfg.Database.Driver == DriverPostgres {
		defaultPort = 5432
	}
	port, err := getEnvInt("DB_PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = port

	retries, err := getEnvInt("DB_CONNECT_RETRIES", 1)
	if err != nil {
		return nil, err
	}
	if retries < 1 {
		return nil, fmt.Errorf("DB_CONNECT_RETRIES must be at least 1")
	}
	cfg.Database.ConnectRetries = retries

	cfg.Auth.PasswordScheme = getEnv("PASSWORD_SCHEME", utils.SchemeSHA256)
	if _, err := utils.NewPasswordHasher(cfg.Auth.PasswordScheme); err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_SCHEME: %w", err)
	}
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET_KEY")
	expHours, err := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.Auth.JWTExpirationHours = int64(expHours)

	serverPort, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
