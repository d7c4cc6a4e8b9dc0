package config

import (
	"fmt"
	"slices"
	"time"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	validProviders := []string{"openai", "claude", "ollama", "mock"}
	if cfg.Engine.Provider != "" && !slices.Contains(validProviders, cfg.Engine.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "engine.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Engine.Provider),
		})
	}
	if cfg.Engine.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Engine.Timezone); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "engine.timezone",
				Message: fmt.Sprintf("unknown timezone %q", cfg.Engine.Timezone),
			})
		}
	}

	if cfg.Gateway.Port < 0 || cfg.Gateway.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Gateway.Port),
		})
	}
	validBinds := []string{"loopback", "lan"}
	if cfg.Gateway.Bind != "" && !slices.Contains(validBinds, cfg.Gateway.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Gateway.Bind),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}
	validStyles := []string{"pretty", "json"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	validStores := []string{"sqlite", "memory"}
	if cfg.History.Store != "" && !slices.Contains(validStores, cfg.History.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "history.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.History.Store),
		})
	}

	validDays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	for day := range cfg.Restaurant.Hours {
		if !slices.Contains(validDays, day) {
			issues = append(issues, ValidationIssue{
				Path:    "restaurant.hours." + day,
				Message: "unknown weekday",
			})
		}
	}

	return issues
}
