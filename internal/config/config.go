package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied. The restaurant
// block defaults to the zero record: a call can always proceed, it just has
// nothing to ground general-information answers in.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Gateway: GatewayConfig{
			Port: 18790,
			Bind: "loopback",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
		History: HistoryConfig{
			Store: "sqlite",
		},
	}
}
