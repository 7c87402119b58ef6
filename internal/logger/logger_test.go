package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureEntry redirects the logger's output to a buffer, emits one Info
// message, and returns the decoded JSON entry.
func captureEntry(t *testing.T, l *Logger, msg string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Info().Msg(msg)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	l := NewLogger("custodian")
	require.NotNil(t, l)

	entry := captureEntry(t, l, "hello")

	assert.Equal(t, "custodian", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

func TestNewLogger_GlobalSettings(t *testing.T) {
	NewLogger("settings")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_NotNil(t *testing.T) {
	l := NewClientLogger("client")
	require.NotNil(t, l)

	// must not panic even when the log file could not be opened and the
	// logger fell back to stdout
	l.Debug().Msg("client logger smoke check")
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	var buf bytes.Buffer
	l.Logger = l.Output(&buf)
	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

func TestGetChildLogger_InheritsFieldsAndIsIndependent(t *testing.T) {
	parent := NewLogger("inherited-role")
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)

	entry := captureEntry(t, child, "child message")
	assert.Equal(t, "inherited-role", entry["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("never nil without attached logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("returns attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
		ctx := zl.WithContext(context.Background())

		l := FromContext(ctx)
		require.NotNil(t, l)
		l.Info().Msg("from context")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ctx-value", entry["ctx-key"])
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("never nil without attached logger", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.NotNil(t, FromRequest(req))
	})

	t.Run("returns attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(zl.WithContext(req.Context()))

		l := FromRequest(req)
		require.NotNil(t, l)
		l.Info().Msg("from request")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-value", entry["req-key"])
	})
}
