package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Store struct {
		// Driver selects the document store backend: postgres or memory.
		Driver          string `yaml:"driver" env:"STORE_DRIVER"`
		Host            string `yaml:"host" env:"STORE_HOST"`
		Port            string `yaml:"port" env:"STORE_PORT"`
		User            string `yaml:"user" env:"STORE_USER"`
		Password        string `yaml:"password" env:"STORE_PASSWORD"`
		DBName          string `yaml:"dbname" env:"STORE_NAME"`
		SSLMode         string `yaml:"sslmode" env:"STORE_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"STORE_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"STORE_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"STORE_CONN_MAX_LIFETIME"`
	} `yaml:"store"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry everything
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Store.Driver = "postgres"
	config.Store.Host = "localhost"
	config.Store.Port = "5432"
	config.Store.User = "postgres"
	config.Store.Password = "postgres"
	config.Store.DBName = "studentrecords"
	config.Store.SSLMode = "disable"
	config.Store.MaxIdleConns = 5
	config.Store.MaxOpenConns = 20
	config.Store.ConnMaxLifetime = "1h"

	config.Seed.Enabled = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Store.Driver) {
	case "postgres":
		if config.Store.Host == "" {
			return fmt.Errorf("store host is required")
		}
		if config.Store.DBName == "" {
			return fmt.Errorf("store database name is required")
		}
		if _, err := time.ParseDuration(config.Store.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid store connection max lifetime: %w", err)
		}
	case "memory":
		// No connection settings required
	default:
		return fmt.Errorf("unsupported store driver: %s", config.Store.Driver)
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Store.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Store.User,
		c.Store.Password,
		c.Store.Host,
		c.Store.Port,
		c.Store.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsDuration gets an environment variable as a duration or returns a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
