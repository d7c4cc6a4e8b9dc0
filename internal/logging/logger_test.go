package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info").Sub("dialog")

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dialog", entry["subsystem"])
	assert.Equal(t, "hello", entry["message"])
}

func TestWithCallTagsCallID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").WithCall("call-42")

	log.Debug().Msg("turn")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "call-42", entry["callId"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestSilentLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "silent")

	log.Error().Msg("nope")
	assert.Zero(t, buf.Len())
}

func TestJSONStyleWritesRawJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewFromOptions(Options{Level: "info", Style: "json", Console: &buf})
	require.NoError(t, err)

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
}

func TestPrettyStyleIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewFromOptions(Options{Level: "info", Style: "pretty", Console: &buf})
	require.NoError(t, err)

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	var entry map[string]any
	assert.Error(t, json.Unmarshal(buf.Bytes(), &entry))
}

func TestFileSinkReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "tavola.log")
	log, err := NewFromOptions(Options{Level: "info", Style: "pretty", File: path, Console: &buf})
	require.NoError(t, err)

	log.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "to file", entry["message"])
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "banana")

	log.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())
	log.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}
