package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-forge/internal/style"
)

// ScanFontDir discovers TrueType files in dir and maps them to font
// families. "Calibri.ttf" registers the regular face, "Calibri-Bold.ttf"
// the bold one. A missing or unreadable directory yields no fonts; the
// renderer then falls back to the core faces.
func ScanFontDir(dir string) []FontFile {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var fonts []FontFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ttf") {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		family, bold := style.NormalizeFontName(base)
		if family == "" {
			continue
		}
		fontStyle := ""
		if bold {
			fontStyle = "B"
		}
		fonts = append(fonts, FontFile{
			Family: family,
			Style:  fontStyle,
			Path:   filepath.Join(dir, entry.Name()),
		})
	}
	return fonts
}
