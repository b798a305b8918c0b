package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "roster.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: expectedAll[5:]},
		{name: "partial wrap", maxLines: 3, expected: expectedAll[7:]},
		{name: "exactly all", maxLines: 10, expected: expectedAll},
		{name: "more than exists", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestRead_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Read(path, 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("Read() = %v, %v; want empty", got, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		line string
		want Level
	}{
		{"2026-10-14T09:30:00Z INF request op=list", LevelInfo},
		{"2026-10-14T09:30:00Z WRN probe failed error=\"dial tcp\"", LevelWarn},
		{"2026-10-14T09:30:00Z ERR update rejected", LevelError},
		{"2026-10-14T09:30:00Z DBG sending", LevelDebug},
		{"2026-10-14T09:30:00Z FTL boom", LevelError},
		{"plain text", LevelUnknown},
		{"", LevelUnknown},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.line); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestPaletteRender(t *testing.T) {
	p := Palette{
		Warn:  lipgloss.NewStyle().SetString("W:"),
		Plain: lipgloss.NewStyle(),
	}
	lines := []string{
		"2026-10-14T09:30:00Z WRN careful",
		"continuation",
	}
	got := p.Render(lines)
	want := "W: 2026-10-14T09:30:00Z WRN careful\ncontinuation"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}
