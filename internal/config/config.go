// Package config defines the vtcli configuration model and default values.
//
// Configuration is assembled from two sources with a strict precedence
// chain: built-in defaults < environment variables < CLI flag overrides.
// The resulting Config is validated once at startup and treated as
// read-only afterwards; every component receives it by reference.
package config

import (
	"strings"
	"time"
)

// Environment variable names recognized by LoadFromEnv. A .env file in the
// working directory is honored via godotenv autoload in the CLI entry point.
const (
	EnvEndpoint        = "VT_ENDPOINT"
	EnvSubscriptionKey = "VT_SUBSCRIPTION_KEY"
	EnvRegion          = "VT_REGION"
	EnvAPIVersion      = "VT_API_VERSION"
	EnvOutputDir       = "VT_OUTPUT_DIR"
)

// Config holds every configuration field for the vtcli CLI.
type Config struct {
	// Vendor service connection.
	Endpoint        string `validate:"required,url"`
	SubscriptionKey string `validate:"required"`
	Region          string
	APIVersion      string `validate:"required"`

	// Artifact output.
	OutputDir string `validate:"required"`

	// Polling behavior.
	PollInterval time.Duration `validate:"gt=0"`
	MaxWait      time.Duration `validate:"gt=0"`

	// Transport retry behavior.
	MaxRetries     int           `validate:"gte=0"`
	RetryBaseDelay time.Duration `validate:"gt=0"`

	// Runtime flags.
	Verbose bool
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		APIVersion:     "2024-05-20-preview",
		OutputDir:      "translations",
		PollInterval:   30 * time.Second,
		MaxWait:        60 * time.Minute,
		MaxRetries:     3,
		RetryBaseDelay: 2 * time.Second,
	}
}

// BaseURL returns the root URL for video-translation API paths, derived
// from the configured endpoint.
func (c *Config) BaseURL() string {
	return strings.TrimSuffix(c.Endpoint, "/") + "/videotranslation"
}
