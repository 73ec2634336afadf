package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("controller").
		With("attempt_id", "abc").
		Warn(context.Background(), errors.New("boom"), "Submission failed", "outcome", "network_error")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "Submission failed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "controller", entry["component"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "abc", entry["attempt_id"])
	assert.Equal(t, "network_error", entry["outcome"])
}

func TestSetLevelAppliesToDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})
	derived := logger.WithComponent("server")

	derived.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelDebug)
	derived.Info(context.Background(), "visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSanitizeForLog(t *testing.T) {
	got := SanitizeForLog("line one\nline two\x00\x1b[31m")
	assert.False(t, strings.ContainsAny(got, "\n\x00\x1b"))
	assert.True(t, strings.HasPrefix(got, "line one line two"))
}

func TestPerfLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Output: &buf})

	op := StartOperation(logger, "submit")
	op.End(context.Background(), "status", 200)

	out := buf.String()
	assert.Contains(t, out, "operation=submit")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "duration=")
}
