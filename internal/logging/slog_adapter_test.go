// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedSlog(level zerolog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewSlogHandler(zerolog.New(&buf).Level(level))), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	slogger, buf := newBufferedSlog(zerolog.DebugLevel)
	slogger.Warn("service restarted",
		"service", "export",
		"attempt", 3,
		"backoff", 2*time.Second,
		"healthy", false,
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"export"`,
		`"attempt":3`,
		`"healthy":false`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	slogger, buf := newBufferedSlog(zerolog.InfoLevel)
	slogger.With("supervisor", "root").WithGroup("event").Info("terminated", "name", "http")

	output := buf.String()
	if !strings.Contains(output, `"event.supervisor":"root"`) && !strings.Contains(output, `"supervisor":"root"`) {
		t.Errorf("expected pre-configured attribute, got: %s", output)
	}
	if !strings.Contains(output, `"event.name":"http"`) {
		t.Errorf("expected grouped key, got: %s", output)
	}
}

func TestSlogHandler_NestedGroupAttr(t *testing.T) {
	t.Parallel()

	slogger, buf := newBufferedSlog(zerolog.InfoLevel)
	slogger.Info("nested", slog.Group("export", slog.Int("records", 12), slog.String("path", "/tmp/x")))

	output := buf.String()
	if !strings.Contains(output, `"export.records":12`) || !strings.Contains(output, `"export.path":"/tmp/x"`) {
		t.Errorf("expected flattened group, got: %s", output)
	}
}

func TestSlogHandler_EmptyModifiers(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
	if h.WithAttrs(nil) != h {
		t.Error("WithAttrs(nil) should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	NewSlogLogger("supervisor").Info("started")

	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
