package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/internal/config"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		c := Init(&config.Config{LogLevel: tt.level})
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Errorf("level %q: got %s, want %s", tt.level, got, tt.want)
		}
		c.Close()
	}
}

func TestInitWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai.log")
	c := Init(&config.Config{LogLevel: "info", LogFile: path})
	sl := ForSession("valley-3")
	sl.Info().Msg("Session started")
	log.Info().Msg("Plain line")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(raw)
	for _, want := range []string{"Logger initialized", `"session":"valley-3"`, "Plain line"} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %q:\n%s", want, out)
		}
	}
}
