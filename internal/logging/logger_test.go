package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		verbose bool
		want    zerolog.Level
	}{
		{"cli default", "cli", false, zerolog.InfoLevel},
		{"gui default", "gui", false, zerolog.WarnLevel},
		{"cli verbose", "cli", true, zerolog.DebugLevel},
		{"gui verbose", "gui", true, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.mode, tt.verbose); got != tt.want {
				t.Errorf("ParseLevel(%q, %v) = %v, want %v", tt.mode, tt.verbose, got, tt.want)
			}
		})
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("cli", &buf).Component("selector")

	logger.Info().Str("path", "/tmp/report.htm").Msg("path changed")

	out := buf.String()
	if !strings.Contains(out, "path changed") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "selector") {
		t.Errorf("expected component name in output, got %q", out)
	}
	if logger.Mode() != "cli" {
		t.Errorf("Mode() = %q, want cli", logger.Mode())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := Nop()
	logger.Error().Msg("dropped")
	logger.Warn().Int("count", 1).Msg("dropped")
}
