package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// levelTokens maps the level labels the text formatter writes.
var levelTokens = map[string]log.Level{
	"DEBU":  log.DebugLevel,
	"DEBUG": log.DebugLevel,
	"INFO":  log.InfoLevel,
	"WARN":  log.WarnLevel,
	"ERRO":  log.ErrorLevel,
	"ERROR": log.ErrorLevel,
	"FATA":  log.FatalLevel,
	"FATAL": log.FatalLevel,
}

// LineLevel finds the level label in a log line. ok is false for lines
// without one, such as continuation lines.
func LineLevel(line string) (level log.Level, ok bool) {
	fields := strings.Fields(line)
	// Timestamp takes up to two fields before the level.
	for i := 0; i < len(fields) && i < 3; i++ {
		if lvl, found := levelTokens[fields[i]]; found {
			return lvl, true
		}
	}
	return 0, false
}

// Filter keeps lines at or above min. Lines without a level follow the
// decision made for the line before them.
func Filter(lines []string, min log.Level) []string {
	out := make([]string, 0, len(lines))
	keep := true
	for _, line := range lines {
		if lvl, ok := LineLevel(line); ok {
			keep = lvl >= min
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

// Colorizer highlights the level label of log lines.
type Colorizer struct {
	levels map[log.Level]lipgloss.Style
}

// NewColorizer builds level styles on r; a nil renderer uses the default.
func NewColorizer(r *lipgloss.Renderer) Colorizer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Colorizer{levels: map[log.Level]lipgloss.Style{
		log.DebugLevel: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		log.InfoLevel:  r.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		log.WarnLevel:  r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		log.ErrorLevel: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		log.FatalLevel: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}}
}

// Line returns line with its level label styled.
func (c Colorizer) Line(line string) string {
	lvl, ok := LineLevel(line)
	if !ok {
		return line
	}
	for token, tokenLevel := range levelTokens {
		if tokenLevel != lvl {
			continue
		}
		padded := " " + token + " "
		if i := strings.Index(" "+line+" ", padded); i >= 0 {
			return line[:i] + c.levels[lvl].Render(token) + line[i+len(token):]
		}
	}
	return line
}

// Lines colorizes every line.
func (c Colorizer) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = c.Line(line)
	}
	return out
}
