package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TextFormatSortsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: DEBUG, Output: &buf})

	log.WithField("component", "transfer").Info("part uploaded", "part", 2, "bucket", "data")

	line := buf.String()
	assert.Contains(t, line, "[INFO] part uploaded")
	assert.Contains(t, line, "| bucket=data component=transfer part=2")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: WARN, Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: INFO, Output: &buf, Format: FormatJSON})

	log.Error("transfer failed", "error", errors.New("boom"), "elapsed", 2*time.Second, "file_id", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "transfer failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "2s", entry["elapsed"])
	assert.EqualValues(t, 7, entry["file_id"])
}

func TestLogger_WithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: INFO, Output: &buf})
	_ = parent.WithFields("session", "abc")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "session")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{"warning", WARN, false},
		{"ERROR", ERROR, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewFromSettings_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdtp.log")

	log, closer, err := NewFromSettings("debug", "json", path)
	require.NoError(t, err)
	log.Debug("to file")
	require.NoError(t, closer.Close())

	_, _, err = NewFromSettings("loud", "text", "stderr")
	assert.Error(t, err)
}
