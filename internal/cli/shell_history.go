package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// DefaultHistoryPath is ~/.uniconvert/shell_history, or $UNICONVERT_HISTORY
// when set.
func DefaultHistoryPath() string {
	if p := os.Getenv("UNICONVERT_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".uniconvert", "shell_history")
}

// shellHistory is the in-memory command history, mirrored to a file when
// path is set. File errors are ignored.
type shellHistory struct {
	path  string
	lines []string
}

func newShellHistory(path string) *shellHistory {
	h := &shellHistory{path: path}
	if path != "" {
		h.lines = loadHistoryFromPath(path)
	}
	return h
}

func (h *shellHistory) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.lines = append(h.lines, line)
	if h.path != "" {
		appendHistoryToPath(h.path, line)
	}
}

func (h *shellHistory) len() int { return len(h.lines) }

func (h *shellHistory) at(i int) string { return h.lines[i] }

// loadHistoryFromPath reads command history from the given file.
// Returns nil if the file does not exist or cannot be read.
func loadHistoryFromPath(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistoryToPath appends a single line to the given history file.
func appendHistoryToPath(path, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line + "\n")
}
