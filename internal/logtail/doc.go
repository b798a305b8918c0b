// Package logtail reads and styles the tail of roster's log file.
//
// # Overview
//
// The in-app log view shows the most recent lines from the file written by
// the logging package. Read extracts the last N lines; Palette renders them
// with a lipgloss style per level.
//
// # Reading Log Files
//
// Read makes one sequential pass with a ring buffer of maxLines entries, so
// memory stays O(maxLines) regardless of file size. Lines come back oldest
// first.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//	body := palette.Render(lines)
//
// # Levels
//
// Lines are expected in zerolog's console format without color:
//
//	2026-10-14T09:30:00Z WRN probe failed target=127.0.0.1:8000
//
// The second field is the level tag. Lines that do not match (multi-line
// values, foreign output) use the Plain style.
//
// # Error Handling
//
// A missing file returns nil, nil; the log may not exist before the first
// write. Other open and scan errors are returned wrapped.
package logtail
