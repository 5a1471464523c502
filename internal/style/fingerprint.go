// Package style derives a named style sheet from a formatting fingerprint:
// sampled text spans with font, size and position captured from a reference
// document by an external extractor.
package style

import (
	"encoding/json"
	"log"
	"os"
)

// BBox is a span's bounding box in page coordinates (points).
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// TextSpan is one sampled text run from the reference document.
type TextSpan struct {
	Page   int     `json:"page"`
	Text   string  `json:"text"`
	Font   string  `json:"font"`
	Size   float64 `json:"font_size"`
	Color  int     `json:"color"`
	BBox   BBox    `json:"position"`
	Bold   bool    `json:"bold"`
	Italic bool    `json:"italic"`
}

// PageSize records one page's dimensions in points.
type PageSize struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontUsage summarizes how often a font appears in the sampled spans.
type FontUsage struct {
	Count  int  `json:"count"`
	Common bool `json:"common"`
}

// Fingerprint is the formatting fingerprint of one reference document.
// It is produced once by the external extractor and read-only here.
type Fingerprint struct {
	PageCount int                  `json:"page_count"`
	PageSizes []PageSize           `json:"page_sizes"`
	Spans     []TextSpan           `json:"text_blocks"`
	Fonts     map[string]FontUsage `json:"fonts"`
}

// fingerprintFile matches the extractor's on-disk wrapper object.
type fingerprintFile struct {
	Document Fingerprint `json:"document"`
}

// commonFontThreshold marks a font as common when it appears in more spans
// than this.
const commonFontThreshold = 5

// Letter page dimensions in points.
const (
	letterWidth  = 612.0
	letterHeight = 792.0
)

// Load reads a fingerprint file. An absent or unreadable file is never
// fatal: the engine logs the problem and proceeds with the built-in default
// fingerprint, which drives every role to its default style.
func Load(path string) *Fingerprint {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("style: cannot read fingerprint %s: %v; using default styles", path, err)
		return DefaultFingerprint()
	}

	var file fingerprintFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("style: cannot parse fingerprint %s: %v; using default styles", path, err)
		return DefaultFingerprint()
	}

	fp := file.Document
	normalize(&fp)
	return &fp
}

// DefaultFingerprint returns the minimal fingerprint assumed when no usable
// sample exists: a 3-page Letter document carrying only generic fonts and no
// spans, so every role resolves to its built-in default.
func DefaultFingerprint() *Fingerprint {
	fp := &Fingerprint{
		PageCount: 3,
		PageSizes: []PageSize{{Page: 0, Width: letterWidth, Height: letterHeight}},
		Fonts: map[string]FontUsage{
			"AAAAAA+Calibri-Bold": {Count: 3},
			"BAAAAA+Calibri":      {Count: 4},
			"CAAAAA+ArialMT":      {Count: 3},
		},
	}
	normalize(fp)
	return fp
}

// normalize recomputes derived fields the extractor may omit.
func normalize(fp *Fingerprint) {
	for name, usage := range fp.Fonts {
		usage.Common = usage.Count > commonFontThreshold
		fp.Fonts[name] = usage
	}
}

// FirstPage returns the lowest page index present in the sampled spans,
// falling back to zero for an empty sample.
func (fp *Fingerprint) FirstPage() int {
	first := 0
	found := false
	for _, span := range fp.Spans {
		if !found || span.Page < first {
			first = span.Page
			found = true
		}
	}
	return first
}
