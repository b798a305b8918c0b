package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seen := 0
	for scanner.Scan() {
		ring[seen%maxLines] = scanner.Text()
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen <= maxLines {
		return ring[:seen:seen], nil
	}
	start := seen % maxLines
	lines := make([]string, 0, maxLines)
	lines = append(lines, ring[start:]...)
	lines = append(lines, ring[:start]...)
	return lines, nil
}

// Level is the severity parsed from a console-format log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = map[string]Level{
	"TRC": LevelDebug,
	"DBG": LevelDebug,
	"INF": LevelInfo,
	"WRN": LevelWarn,
	"ERR": LevelError,
	"FTL": LevelError,
	"PNC": LevelError,
}

// ParseLevel finds the level tag that follows the timestamp, as written by
// zerolog's ConsoleWriter ("2026-10-14T09:30:00Z WRN message key=value").
func ParseLevel(line string) Level {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return LevelUnknown
	}
	if lvl, ok := levelTags[fields[1]]; ok {
		return lvl
	}
	return LevelUnknown
}

// Palette styles each level for display.
type Palette struct {
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Plain lipgloss.Style
}

// Style returns the style for lvl.
func (p Palette) Style(lvl Level) lipgloss.Style {
	switch lvl {
	case LevelDebug:
		return p.Debug
	case LevelInfo:
		return p.Info
	case LevelWarn:
		return p.Warn
	case LevelError:
		return p.Error
	default:
		return p.Plain
	}
}

// Render joins lines, styling each by its level.
func (p Palette) Render(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Style(ParseLevel(line)).Render(line))
	}
	return b.String()
}
