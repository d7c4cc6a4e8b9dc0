package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	require.Equal(t, "tavola", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "call", "gateway", "config", "history"} {
		assert.Contains(t, names, want)
	}
}

func TestLoggerBuiltFromConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TAVOLA_HOME", home)
	yaml := "logging:\n  level: debug\n  style: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"config", "path"})
	require.NoError(t, root.Execute())

	assert.Equal(t, zerolog.DebugLevel, log.Zerolog().GetLevel())
	assert.Equal(t, "json", appCfg.Logging.Style)
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TAVOLA_HOME", home)
	yaml := "logging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"--log-level", "error", "config", "path"})
	require.NoError(t, root.Execute())
	t.Cleanup(func() { logLevel = "" })

	assert.Equal(t, zerolog.ErrorLevel, log.Zerolog().GetLevel())
}

func TestGatewayHasRunSubcommand(t *testing.T) {
	gw := newGatewayCmd()
	sub, _, err := gw.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", sub.Name())
	assert.NotNil(t, sub.Flags().Lookup("port"))
	assert.NotNil(t, sub.Flags().Lookup("bind"))
}
