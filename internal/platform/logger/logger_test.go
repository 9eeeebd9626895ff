package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("loud"))
}

func TestLogger_JSON_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "pet-care", Writer: &buf})

	log.With(map[string]any{"kind": "pets"}).Info("list failed", map[string]any{
		"error": errors.New("boom"),
		"scope": "owner-1",
		"":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "list failed", entry["message"])
	assert.Equal(t, "pet-care", entry["app"])
	assert.Equal(t, "pets", entry["kind"])
	assert.Equal(t, "owner-1", entry["scope"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatJSON, Writer: &buf})

	log.Info("hidden", nil)
	log.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	log.Error("shown", nil)
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatText, Writer: &buf})

	log.Debug("hello", map[string]any{"pet": "milo"})
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "pet=milo")
}
