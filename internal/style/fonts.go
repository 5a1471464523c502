package style

import "strings"

// GenericFamily is the fallback face used when a sampled font name is not
// registered with the renderer.
const GenericFamily = "Helvetica"

// coreFamilies are the families every PDF renderer can produce without font
// files. Arial resolves to the Helvetica metrics.
var coreFamilies = map[string]bool{
	"helvetica": true,
	"arial":     true,
	"times":     true,
	"courier":   true,
}

// DefaultRegistered reports whether a family is renderable without
// registering font files.
func DefaultRegistered(family string) bool {
	return coreFamilies[strings.ToLower(family)]
}

// boldMarkers are name fragments that indicate a bold face.
var boldMarkers = []string{"bold", "black", "heavy"}

// NormalizeFontName splits an extracted font name into a clean family name
// and a bold flag. Extracted names carry subset prefixes ("AAAAAA+") and
// style suffixes ("Calibri-Bold", "ArialMT") that must not leak into the
// style sheet.
func NormalizeFontName(name string) (family string, bold bool) {
	// Strip the subset prefix.
	if idx := strings.Index(name, "+"); idx >= 0 {
		name = name[idx+1:]
	}

	lower := strings.ToLower(name)
	for _, marker := range boldMarkers {
		if strings.Contains(lower, marker) {
			bold = true
			break
		}
	}

	// Family is the part before the first style separator.
	family = name
	for _, sep := range []string{"-", ","} {
		if idx := strings.Index(family, sep); idx >= 0 {
			family = family[:idx]
		}
	}
	family = strings.TrimSuffix(family, "MT")
	family = strings.TrimSuffix(family, "PS")
	return strings.TrimSpace(family), bold
}

// resolveFont derives the sheet font for a sampled span. Unregistered
// families fall back to the generic face; the bold flag survives either way.
func resolveFont(span *TextSpan, registered func(string) bool) (family string, bold bool) {
	family, bold = NormalizeFontName(span.Font)
	bold = bold || span.Bold
	if registered == nil {
		registered = DefaultRegistered
	}
	if family == "" || !registered(family) {
		family = GenericFamily
	}
	return family, bold
}
