// Package config loads the process-wide settings once at startup and hands
// them to constructors as explicit structs. Nothing below this package reads
// the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUSDABaseURL is the FoodData Central v1 API root.
	DefaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

	StorageProviderS3     = "s3"
	StorageProviderMemory = "memory"
)

// USDA holds settings for the upstream food database.
type USDA struct {
	APIKey               string        `yaml:"api_key" validate:"required"`
	BaseURL              string        `yaml:"base_url" validate:"required,url"`
	Timeout              time.Duration `yaml:"timeout" validate:"gt=0"`
	EnableCircuitBreaker bool          `yaml:"enable_circuit_breaker"`
}

// Storage holds settings for the blob store.
type Storage struct {
	Provider string `yaml:"provider" validate:"oneof=s3 memory"`
	// ConnectionString is a semicolon separated key=value list, see
	// storage.ParseConnectionString.
	ConnectionString string `yaml:"connection_string"`
	Container        string `yaml:"container" validate:"required"`
	Region           string `yaml:"region"`
	Endpoint         string `yaml:"endpoint" validate:"omitempty,url"`
}

// Tracing holds OpenTelemetry exporter settings.
type Tracing struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Config holds all intake handler configuration
type Config struct {
	Environment   string `yaml:"environment" validate:"oneof=development staging production"`
	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`
	ServerAddress string `yaml:"server_address"`

	USDA    USDA    `yaml:"usda"`
	Storage Storage `yaml:"storage"`
	Tracing Tracing `yaml:"tracing"`
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// named by CONFIG_FILE, and environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironmentVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment:   "development",
		LogLevel:      "info",
		ServerAddress: ":8080",
		USDA: USDA{
			BaseURL:              DefaultUSDABaseURL,
			Timeout:              10 * time.Second,
			EnableCircuitBreaker: true,
		},
		Storage: Storage{
			Provider: StorageProviderS3,
			Region:   "us-east-1",
		},
		Tracing: Tracing{
			ServiceName: "projfit-intake",
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironmentVariables() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)

	c.USDA.APIKey = getEnv("USDA_API_KEY", c.USDA.APIKey)
	c.USDA.BaseURL = getEnv("USDA_BASE_URL", c.USDA.BaseURL)
	c.USDA.Timeout = getEnvDuration("HTTP_TIMEOUT", c.USDA.Timeout)
	c.USDA.EnableCircuitBreaker = getEnvBool("ENABLE_CIRCUIT_BREAKER", c.USDA.EnableCircuitBreaker)

	c.Storage.Provider = getEnv("STORAGE_PROVIDER", c.Storage.Provider)
	c.Storage.ConnectionString = getEnv("STORAGE_CONNECTION_STRING", c.Storage.ConnectionString)
	c.Storage.Container = getEnv("BLOB_CONTAINER", c.Storage.Container)
	c.Storage.Region = getEnv("AWS_REGION", c.Storage.Region)
	c.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", c.Storage.Endpoint)

	c.Tracing.Enabled = getEnvBool("ENABLE_TRACING", c.Tracing.Enabled)
	c.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// ClientConfig configures the form clients that call the intake handler.
type ClientConfig struct {
	FunctionURL string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gt=0"`
	WebAddress  string
	Environment string
	LogLevel    string `validate:"oneof=debug info warn error"`
}

// LoadClientConfig reads the form client settings from the environment.
func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		FunctionURL: getEnv("FUNCTION_URL", "http://localhost:8080/api/intake"),
		Timeout:     getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		WebAddress:  getEnv("WEB_ADDRESS", ":8501"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("client configuration validation failed: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvDuration accepts Go durations ("15s") or plain seconds ("15").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
