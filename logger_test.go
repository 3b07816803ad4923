package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConsoleLogger_RendersThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	l := newConsoleLogger(zerolog.ConsoleWriter{Out: &buf, NoColor: true}, slog.LevelInfo)
	l.Info("spectrum computed", "width", 64)
	l.Debug("hidden")
	out := buf.String()
	if !strings.Contains(out, "INF") || !strings.Contains(out, "spectrum computed") || !strings.Contains(out, "width=64") {
		t.Fatalf("unexpected console output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out)
	}
}
