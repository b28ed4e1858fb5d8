package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		withSource bool
	}{
		{"debug has no source", slog.LevelDebug, false},
		{"info has no source", slog.LevelInfo, false},
		{"warn carries source", slog.LevelWarn, true},
		{"error carries source", slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, slog.LevelWarn, slog.LevelError))

			log.Log(context.Background(), tt.level, "asset retired", "asset_id", 7)

			out := buf.String()
			assert.Contains(t, out, "asset retired")
			assert.Equal(t, tt.withSource, bytes.Contains(buf.Bytes(), []byte("source=")), out)
		})
	}
}

func TestConditionalSourceHandler_WithAttrsKeepsLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).With("component", "ledger")

	log.Error("attach failed")

	assert.Contains(t, buf.String(), "component=ledger")
	assert.Contains(t, buf.String(), "source=")
}
