package config

import (
	"time"

	"github.com/tavolahq/tavola/internal/domain"
)

// Config is the root configuration for Tavola.
type Config struct {
	Engine     EngineConfig      `yaml:"engine,omitempty"`
	Gateway    GatewayConfig     `yaml:"gateway,omitempty"`
	Logging    LoggingConfig     `yaml:"logging,omitempty"`
	History    HistoryConfig     `yaml:"history,omitempty"`
	Restaurant domain.Restaurant `yaml:"restaurant,omitempty"`
}

// EngineConfig selects the NLU model provider.
type EngineConfig struct {
	Provider string `yaml:"provider,omitempty"` // "openai" | "claude" | "ollama"
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"apiKey,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"` // custom base URL (Ollama, proxies)
	Timezone string `yaml:"timezone,omitempty"` // IANA name for the business's local time
}

// Location returns the business's time zone, or the host's local zone
// when unset. An unknown name also falls back to local; Validate is
// where it gets reported.
func (e EngineConfig) Location() *time.Location {
	if e.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GatewayConfig controls the call gateway WebSocket server.
type GatewayConfig struct {
	Port  int    `yaml:"port,omitempty"`
	Bind  string `yaml:"bind,omitempty"` // "loopback" | "lan"
	Token string `yaml:"token,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File  string `yaml:"file,omitempty"`
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}

// HistoryConfig controls call-history recording.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // defaults to true
	Store   string `yaml:"store,omitempty"`   // "sqlite" | "memory"
	Path    string `yaml:"path,omitempty"`    // sqlite file, defaults under the base dir
}

// RecordingEnabled reports whether call history should be written.
func (h HistoryConfig) RecordingEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}
