package config

import (
	"os"
	"strconv"

	"goassay/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EngineConfig holds the statistical engine constants. Defaults match the
// documented analysis behavior; every value is overridable via environment.
type EngineConfig struct {
	ConfidenceLevel      float64
	SmallSampleThreshold int
	ImbalanceRatio       float64
	WeightCost           float64
	WeightAccuracy       float64
	ExpectedVolume       int
	MaxParallel          int64
}

// PathConfig holds file system paths
type PathConfig struct {
	ImportFile string
	ExportDir  string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Engine: EngineConfig{
			ConfidenceLevel:      getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
			SmallSampleThreshold: getEnvIntOrDefault("SMALL_SAMPLE_THRESHOLD", 10),
			ImbalanceRatio:       getEnvFloatOrDefault("IMBALANCE_RATIO", 10),
			WeightCost:           getEnvFloatOrDefault("WEIGHT_COST", 0.5),
			WeightAccuracy:       getEnvFloatOrDefault("WEIGHT_ACCURACY", 0.5),
			ExpectedVolume:       getEnvIntOrDefault("EXPECTED_VOLUME", 1000),
			MaxParallel:          int64(getEnvIntOrDefault("MAX_PARALLEL", 8)),
		},
		Paths: PathConfig{
			ImportFile: getEnvOrDefault("IMPORT_FILE", ""),
			ExportDir:  getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Engine.ConfidenceLevel <= 0 || config.Engine.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be in (0,1)")
	}
	if config.Engine.WeightCost < 0 || config.Engine.WeightAccuracy < 0 {
		return errors.ConfigInvalid("ranking weights must be non-negative")
	}
	if config.Engine.WeightCost+config.Engine.WeightAccuracy == 0 {
		return errors.ConfigInvalid("ranking weights must not both be zero")
	}
	if config.Engine.ExpectedVolume <= 0 {
		return errors.ConfigInvalid("EXPECTED_VOLUME must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
