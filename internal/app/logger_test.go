package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_LevelAndFormat(t *testing.T) {
	t.Run("debug level passes debug records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("debug", "text", &buf).Debug("visible")
		require.Contains(t, buf.String(), "visible")
	})

	t.Run("info level drops debug records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("info", "text", &buf).Debug("hidden")
		require.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("loud", "text", &buf)
		logger.Debug("hidden")
		logger.Info("visible")
		out := buf.String()
		require.NotContains(t, out, "hidden")
		require.Contains(t, out, "visible")
	})

	t.Run("json format emits JSON", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("info", "json", &buf).Info("hello")
		require.True(t, strings.HasPrefix(buf.String(), "{"), "got %q", buf.String())
		require.Contains(t, buf.String(), `"msg":"hello"`)
	})
}
