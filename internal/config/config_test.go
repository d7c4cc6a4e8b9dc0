package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "openai", cfg.Engine.Provider)
	assert.Equal(t, 18790, cfg.Gateway.Port)
	assert.Equal(t, "loopback", cfg.Gateway.Bind)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "sqlite", cfg.History.Store)
	assert.True(t, cfg.History.RecordingEnabled())
	assert.Empty(t, cfg.Restaurant.Name)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 18790, cfg.Gateway.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
engine:
  provider: ollama
  model: llama3
  endpoint: http://localhost:11434
gateway:
  port: 9999
  token: secret123
logging:
  level: debug
  style: json
history:
  enabled: false
restaurant:
  name: Al Fornareto
  phone: "+39 041 555 0101"
  address: Calle del Forno 7, Venezia
  hours:
    monday: closed
    friday: "12:00-14:30, 19:00-23:30"
  services:
    reservations: true
    takeAway: true
    delivery: true
  menu:
    - name: Pizzas
      items:
        - name: Margherita
          price: 7.5
        - name: Diavola
          price: 9
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Engine.Provider)
	assert.Equal(t, "llama3", cfg.Engine.Model)
	assert.Equal(t, 9999, cfg.Gateway.Port)
	assert.Equal(t, "secret123", cfg.Gateway.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Style)
	assert.False(t, cfg.History.RecordingEnabled())

	assert.Equal(t, "Al Fornareto", cfg.Restaurant.Name)
	assert.Equal(t, "closed", cfg.Restaurant.Hours["monday"])
	assert.True(t, cfg.Restaurant.Services.Delivery)
	require.Len(t, cfg.Restaurant.Menu, 1)
	require.Len(t, cfg.Restaurant.Menu[0].Items, 2)
	assert.Equal(t, "Diavola", cfg.Restaurant.Menu[0].Items[1].Name)
}

func TestLoadBrokenYAMLFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("restaurant: [unclosed"), 0o600))

	cfg, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	// the call must still be able to run on the empty record
	assert.Empty(t, cfg.Restaurant.Name)
	assert.Equal(t, 18790, cfg.Gateway.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAVOLA_PROVIDER", "Claude")
	t.Setenv("TAVOLA_MODEL", "claude-haiku-4-5")
	t.Setenv("TAVOLA_GATEWAY_PORT", "7777")
	t.Setenv("TAVOLA_LOG_LEVEL", "TRACE")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.Engine.Provider)
	assert.Equal(t, "claude-haiku-4-5", cfg.Engine.Model)
	assert.Equal(t, 7777, cfg.Gateway.Port)
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestExpandSensitiveFields(t *testing.T) {
	t.Setenv("MY_KEY", "sk-test-123")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
engine:
  apiKey: ${MY_KEY}
gateway:
  token: ${UNSET_VAR_XYZ}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.Engine.APIKey)
	assert.Equal(t, "${UNSET_VAR_XYZ}", cfg.Gateway.Token)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.Nil(t, Validate(&cfg))

	cfg.Engine.Provider = "bard"
	cfg.Gateway.Port = 99999
	cfg.Logging.Level = "verbose"
	cfg.Restaurant.Hours = map[string]string{"funday": "12:00-14:00"}

	issues := Validate(&cfg)
	require.Len(t, issues, 4)

	paths := make([]string, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path
	}
	assert.Contains(t, paths, "engine.provider")
	assert.Contains(t, paths, "gateway.port")
	assert.Contains(t, paths, "logging.level")
	assert.Contains(t, paths, "restaurant.hours.funday")
}

func TestEngineLocation(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, time.Local, cfg.Engine.Location())

	cfg.Engine.Timezone = "Europe/Rome"
	assert.Equal(t, "Europe/Rome", cfg.Engine.Location().String())

	cfg.Engine.Timezone = "Mars/Olympus"
	assert.Equal(t, time.Local, cfg.Engine.Location())
}

func TestValidateTimezone(t *testing.T) {
	cfg := Defaults()
	cfg.Engine.Timezone = "Europe/Rome"
	assert.Nil(t, Validate(&cfg))

	cfg.Engine.Timezone = "Mars/Olympus"
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "engine.timezone", issues[0].Path)
}
