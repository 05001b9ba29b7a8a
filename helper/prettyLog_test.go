package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Handler and logger fields are set", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
		})

		require.NotNil(t, handler)
		assert.NotNil(t, handler.Handler)
		assert.NotNil(t, handler.l)
	})

	t.Run("Empty options work", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})
		assert.NotNil(t, handler)
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	handle := func(t *testing.T, level slog.Level, msg string, attrs ...slog.Attr) string {
		t.Helper()
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
		})

		record := slog.NewRecord(time.Now(), level, msg, 0)
		record.AddAttrs(attrs...)

		err := handler.Handle(context.Background(), record)
		require.NoError(t, err)
		return buf.String()
	}

	t.Run("Level labels", func(t *testing.T) {
		tests := []struct {
			level slog.Level
			want  string
		}{
			{slog.LevelDebug, "DEBUG:"},
			{slog.LevelInfo, "INFO:"},
			{slog.LevelWarn, "WARN:"},
			{slog.LevelError, "ERROR:"},
		}
		for _, test := range tests {
			output := handle(t, test.level, "leveled message")
			assert.Contains(t, output, test.want)
			assert.Contains(t, output, "leveled message")
		}
	})

	t.Run("Attributes are rendered as JSON", func(t *testing.T) {
		output := handle(t, slog.LevelInfo, "indexed dataset",
			slog.String("dataset", "sales"),
			slog.Int("num_chunks", 2),
		)

		assert.Contains(t, output, "indexed dataset")
		assert.Contains(t, output, `"dataset"`)
		assert.Contains(t, output, "sales")
		assert.Contains(t, output, "2")
	})

	t.Run("No attributes renders an empty object", func(t *testing.T) {
		output := handle(t, slog.LevelInfo, "bare message")
		assert.Contains(t, output, "{}")
	})

	t.Run("Timestamp format", func(t *testing.T) {
		output := handle(t, slog.LevelInfo, "timed message")
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, output)
	})
}
