package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatSelection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		format      string
		wantJSON    bool
	}{
		{"production defaults to json", "production", "", true},
		{"development defaults to pretty", "development", "", false},
		{"explicit json wins", "development", formatJSON, true},
		{"explicit pretty wins", "production", formatPretty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.environment, Format: tt.format})

			l.Info("catalog loaded", "books", 3)

			out := buf.String()
			if tt.wantJSON {
				var rec map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &rec))
				assert.Equal(t, "catalog loaded", rec["msg"])
				assert.InDelta(t, 3, rec["books"], 0)
			} else {
				assert.Contains(t, out, "INF")
				assert.Contains(t, out, "catalog loaded")
				assert.Contains(t, out, "books=3")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelWarn})

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandler_GroupsPrefixKeys(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil)).WithGroup("store").With("path", "/tmp/x")

	l.Info("write", "count", 2)

	out := buf.String()
	assert.Contains(t, out, "store.path=/tmp/x")
	assert.Contains(t, out, "store.count=2")
}

func TestPrettyHandler_QuotesStringsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty})

	l.Info("query", "title", "The Hobbit")

	assert.Contains(t, buf.String(), `title="The Hobbit"`)
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatJSON})

	l.WithComponent("engine").WithField("top_n", 5).WithError(errors.New("boom")).Info("done")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "engine", rec["component"])
	assert.InDelta(t, 5, rec["top_n"], 0)
	assert.Equal(t, "boom", rec["error"])
}

func TestContextRoundTrip(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty})
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx, fallback))
}

func TestDiscard_WritesNothing(t *testing.T) {
	l := Discard()
	l.Error("nothing to see")
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
