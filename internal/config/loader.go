package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so API keys and tokens can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Engine.APIKey = expandEnvVars(cfg.Engine.APIKey)
	cfg.Gateway.Token = expandEnvVars(cfg.Gateway.Token)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. A missing file produces defaults only; a file that fails
// to parse returns both the defaults and a ConfigError, so callers can log
// the problem and still run the call with an empty restaurant record.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		applyEnvOverrides(&cfg)
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		defaults := Defaults()
		applyEnvOverrides(&defaults)
		return defaults, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Engine.Provider == "" {
		cfg.Engine.Provider = "openai"
	}
	if cfg.Engine.Model == "" {
		cfg.Engine.Model = "gpt-4o-mini"
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 18790
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = "loopback"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = "pretty"
	}
	if cfg.History.Store == "" {
		cfg.History.Store = "sqlite"
	}
}

// applyEnvOverrides reads TAVOLA_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TAVOLA_PROVIDER"); v != "" {
		cfg.Engine.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("TAVOLA_MODEL"); v != "" {
		cfg.Engine.Model = v
	}
	if v := os.Getenv("TAVOLA_API_KEY"); v != "" {
		cfg.Engine.APIKey = v
	}
	if v := os.Getenv("TAVOLA_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = port
		}
	}
	if v := os.Getenv("TAVOLA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
