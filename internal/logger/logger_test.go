package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithOptions(Options{Prefix: "dex", Level: "warn", Output: &buf})

		l.Info("hidden")
		l.Warn("shown", "query", "pika")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "query=pika")
		assert.Contains(t, out, "dex")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithOptions(Options{Level: "debug", Format: FormatJSON, Output: &buf})

		l.Debug("resolved", "id", 25)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "resolved", rec["msg"])
		assert.EqualValues(t, 25, rec["id"])
	})
}
