package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/database"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

const defaultSessionSecret = "dev-session-secret-change-me-please"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Host        string `json:"host"`
	// BasePath prefixes every route, e.g. "/app162" behind a reverse proxy
	BasePath       string   `json:"base_path"`
	AllowedOrigins []string `json:"allowed_origins"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`
	DBPath     string `json:"db_path"`
	SeedData   bool   `json:"seed_data"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	SessionSecret  string `json:"session_secret"`
	BcryptCost     int    `json:"bcrypt_cost"`
	FirstUserAdmin bool   `json:"first_user_admin"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, BasePath: %s, DBDriver: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, LogLevel: %s, SessionSecret: [REDACTED], BcryptCost: %d, FirstUserAdmin: %t}",
		c.Environment, c.Port, c.Host, c.BasePath, c.DBDriver, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPath, c.LogLevel, c.BcryptCost, c.FirstUserAdmin)
}

// Database builds the connection settings for the database package
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,
	}
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%v:%d", c.Host, c.Port)
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates the port, the database driver, the bcrypt cost and the CORS origins
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("APP_PORT out of range: %d", port)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "mysql", "postgres", "postgresql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: mysql, postgres, sqlite)", driver)
	}

	cost := GetEnvAsType("BCRYPT_COST", 10)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	origins := splitList(os.Getenv("ALLOWED_ORIGINS"))
	if err := validateOrigins(origins); err != nil {
		return nil, err
	}

	environment := GetEnvWithDefault("APP_ENV", "development")
	secret := GetEnvWithDefault("SESSION_SECRET", defaultSessionSecret)
	if secret == defaultSessionSecret && environment == "production" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	config := &Config{
		Environment:    environment,
		Port:           port,
		Host:           GetEnvWithDefault("APP_HOST", "localhost"),
		BasePath:       NormalizeBasePath(os.Getenv("BASE_PATH")),
		AllowedOrigins: origins,
		DBDriver:       driver,
		DBHost:         GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:         GetEnvWithDefault("DB_PORT", defaultDBPort(driver)),
		DBName:         GetEnvWithDefault("DB_NAME", "receptek"),
		DBUser:         GetEnvWithDefault("DB_USER", "user"),
		DBPassword:     GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:      GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:         GetEnvWithDefault("DB_PATH", "receptek.sqlite?_foreign_keys=on"),
		SeedData:       GetEnvAsType("SEED_SAMPLE_DATA", false),
		LogLevel:       GetEnvWithDefault("LOG_LEVEL", "info"),
		SessionSecret:  secret,
		BcryptCost:     cost,
		FirstUserAdmin: GetEnvAsType("FIRST_USER_ADMIN", false),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// NormalizeBasePath turns "app162/", "/app162" and "/app162/" into "/app162"; "/" and "" into ""
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func defaultDBPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "postgres", "postgresql":
		return "5432"
	default:
		return ""
	}
}

// validateOrigins accepts "*" or absolute http(s) origins, the forms cors.New does not panic on
func validateOrigins(origins []string) error {
	for _, origin := range origins {
		if origin == "*" || strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			continue
		}
		return fmt.Errorf("ALLOWED_ORIGINS entry %q must be \"*\" or start with http:// or https://", origin)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
