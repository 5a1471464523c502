package ingest

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	blankLines = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes posting text while preserving its structure: line
// endings become LF, runs of spaces collapse, markdown-style headings and
// bullets keep their markers, and blank runs shrink to one separator line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine normalizes one line, keeping heading and bullet markers intact.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
	}

	indent := len(line) - len(trimmed)
	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
}

func isBulletLine(trimmed string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// ReadPostingFile reads a plain-text posting from disk and normalizes it.
func ReadPostingFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("posting file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read posting file: %w", err)
	}
	return CleanText(string(content)), nil
}
