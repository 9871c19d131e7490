package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfidenceThreshold is the minimum score a classification needs to pass the gate
const DefaultConfidenceThreshold = 0.93

// DefaultEndpointName is the SageMaker endpoint the classifier calls when none is configured
const DefaultEndpointName = "image-classification-2026-02-12-12-42-58-663"

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Storage     StorageConfig
	Inference   InferenceConfig
	Gate        GateConfig
	RateLimit   RateLimitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=json text"`
}

// StorageConfig holds object store configuration
type StorageConfig struct {
	Type      string `validate:"oneof=s3 local mock"`
	LocalPath string
	Region    string
}

// InferenceConfig holds inference endpoint configuration
type InferenceConfig struct {
	Type         string `validate:"oneof=sagemaker mock"`
	EndpointName string `validate:"required"`
	ContentType  string `validate:"required"`
	MockResponse string
	Region       string
}

// GateConfig holds confidence gate configuration
type GateConfig struct {
	ConfidenceThreshold float64 `validate:"gt=0,lte=1"`
}

// RateLimitConfig holds rate limiting for the local invocation server
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gt=0"`
	Burst             int     `validate:"gt=0"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORAGE_TYPE", "s3")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/objects")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("INFERENCE_TYPE", "sagemaker")
	v.SetDefault("INFERENCE_ENDPOINT_NAME", DefaultEndpointName)
	v.SetDefault("INFERENCE_CONTENT_TYPE", "application/x-image")
	v.SetDefault("INFERENCE_MOCK_RESPONSE", "[0.03, 0.97]")
	v.SetDefault("CONFIDENCE_THRESHOLD", DefaultConfidenceThreshold)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	region := v.GetString("AWS_REGION")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Type:      v.GetString("STORAGE_TYPE"),
			LocalPath: v.GetString("STORAGE_LOCAL_PATH"),
			Region:    GetEnv("S3_REGION", region),
		},
		Inference: InferenceConfig{
			Type:         v.GetString("INFERENCE_TYPE"),
			EndpointName: v.GetString("INFERENCE_ENDPOINT_NAME"),
			ContentType:  v.GetString("INFERENCE_CONTENT_TYPE"),
			MockResponse: v.GetString("INFERENCE_MOCK_RESPONSE"),
			Region:       GetEnv("SAGEMAKER_REGION", region),
		},
		Gate: GateConfig{
			ConfidenceThreshold: v.GetFloat64("CONFIDENCE_THRESHOLD"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
