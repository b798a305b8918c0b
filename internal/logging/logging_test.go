package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/logtail"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "debug", want: zerolog.DebugLevel},
		{in: " WARN ", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "loud", want: zerolog.InfoLevel, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_WritesConsoleFormat(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	Setup(&buf, zerolog.InfoLevel)
	log.Warn().Str("op", "list").Msg("request failed")
	log.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "WRN") || !strings.Contains(out, "request failed") || !strings.Contains(out, "op=list") {
		t.Fatalf("output = %q, want console warn line", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output contains color codes: %q", out)
	}
	if got := logtail.ParseLevel(strings.TrimSpace(out)); got != logtail.LevelWarn {
		t.Fatalf("logtail.ParseLevel = %v, want LevelWarn", got)
	}
}

func TestOpenFile_CreatesDirectories(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "state", "roster", "roster.log")
	closer, err := OpenFile(path, zerolog.InfoLevel)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	log.Info().Msg("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "INF started") {
		t.Fatalf("log file = %q, want info line", raw)
	}
}
