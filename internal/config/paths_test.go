package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsWithHomeOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("TAVOLA_HOME", base)

	p, err := ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, base, p.Base)
	assert.Equal(t, filepath.Join(base, "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join(base, "history.db"), p.History)
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	t.Setenv("TAVOLA_HOME", filepath.Join(base, "nested", "tavola"))

	p, err := ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, p.EnsureDirs())

	assert.DirExists(t, p.Base)
	assert.DirExists(t, p.Logs)
}
