package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports every configuration problem found at startup.
// The tool fails fast on the first Validate call rather than surfacing
// missing credentials one API call at a time.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// LoadFromEnv overlays recognized environment variables onto cfg.
// Unset variables leave the existing values untouched, so CLI flag
// overrides applied afterwards win over the environment.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvSubscriptionKey); v != "" {
		cfg.SubscriptionKey = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv(EnvAPIVersion); v != "" {
		cfg.APIVersion = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
}

// Validate checks that every required field is present and well-formed.
// Returns a *ValidationError listing all problems, or nil.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	verr, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Problems: []string{err.Error()}}
	}

	problems := make([]string, 0, len(verr))
	for _, fe := range verr {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required (set %s)", fe.Field(), envNameFor(fe.Field())))
		case "url":
			problems = append(problems, fmt.Sprintf("%s must be a valid URL, got %q", fe.Field(), fe.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Problems: problems}
}

// envNameFor maps a Config field name to the environment variable that
// populates it, for actionable error messages.
func envNameFor(field string) string {
	switch field {
	case "Endpoint":
		return EnvEndpoint
	case "SubscriptionKey":
		return EnvSubscriptionKey
	case "Region":
		return EnvRegion
	case "APIVersion":
		return EnvAPIVersion
	case "OutputDir":
		return EnvOutputDir
	default:
		return "a CLI flag"
	}
}
