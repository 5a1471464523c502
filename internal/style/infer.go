package style

import (
	"regexp"
	"strings"
)

// Options tunes style inference.
type Options struct {
	// Overrides maps a role to a literal anchor substring that is searched
	// before the structural classifier runs. Literal anchors couple the
	// sheet to one specific reference document, so they are opt-in only.
	Overrides map[Role]string
	// RegisteredFont reports whether a sampled font family is available to
	// the renderer. Nil means the core-font registry.
	RegisteredFont func(family string) bool
}

// maxLeftMargin caps the sampled left margin at one inch.
const maxLeftMargin = 72.0

// headingTextLimit bounds the span length considered section-level.
const headingTextLimit = 48

// bulletGlyph is the marker glyph sampled from bullet lists.
const bulletGlyph = "•"

var dateRangePattern = regexp.MustCompile(`(?i)(\d{1,2}/\d{4}|\d{4})\s*[-–—]\s*(\d{1,2}/\d{4}|\d{4}|present)`)

var phoneDigitsPattern = regexp.MustCompile(`(?:\D*\d){7}`)

// Infer resolves the style for one role from the fingerprint. It is a pure
// function: per role, in fixed priority, it tries the literal override
// anchor, then the role's structural classifier, then the built-in default.
// The result is always a complete, usable style.
func Infer(fp *Fingerprint, role Role, opts *Options) StyleDef {
	if opts == nil {
		opts = &Options{}
	}

	span := findOverride(fp, role, opts.Overrides)
	if span == nil {
		span = classify(fp, role)
	}
	if span == nil {
		return DefaultStyle(role)
	}

	return deriveStyle(span, role, opts.RegisteredFont)
}

// InferSheet resolves every role against the fingerprint.
func InferSheet(fp *Fingerprint, opts *Options) Sheet {
	sheet := make(Sheet, len(AllRoles))
	for _, role := range AllRoles {
		sheet[role] = Infer(fp, role, opts)
	}
	return sheet
}

// LeftMargin computes the sheet's left margin: the minimum x0 among all
// sampled spans, clamped so it never exceeds the one-inch default.
func LeftMargin(fp *Fingerprint) float64 {
	if fp == nil || len(fp.Spans) == 0 {
		return maxLeftMargin
	}
	min := fp.Spans[0].BBox.X0
	for _, span := range fp.Spans[1:] {
		if span.BBox.X0 < min {
			min = span.BBox.X0
		}
	}
	if min > maxLeftMargin || min < 0 {
		return maxLeftMargin
	}
	return min
}

// deriveStyle builds a StyleDef from a sampled span: font and size come from
// the sample (with the registered-font fallback), layout comes from the fixed
// per-role spacing table.
func deriveStyle(span *TextSpan, role Role, registered func(string) bool) StyleDef {
	family, bold := resolveFont(span, registered)
	spacing := spacingProfiles[role]

	style := StyleDef{
		Font:          family,
		Bold:          bold,
		Size:          span.Size,
		Alignment:     AlignLeft,
		Indent:        spacing.Indent,
		HangingIndent: spacing.HangingIndent,
		SpaceBefore:   spacing.SpaceBefore,
		SpaceAfter:    spacing.SpaceAfter,
	}

	// A sampled span can carry a zero size when extraction glitched; the
	// role default size keeps the sheet renderable.
	if style.Size <= 0 {
		style.Size = defaultFonts[role].Size
	}
	return style
}

// findOverride returns the first span containing the role's literal anchor.
func findOverride(fp *Fingerprint, role Role, overrides map[Role]string) *TextSpan {
	anchor := overrides[role]
	if anchor == "" {
		return nil
	}
	for i := range fp.Spans {
		if strings.Contains(fp.Spans[i].Text, anchor) {
			return &fp.Spans[i]
		}
	}
	return nil
}

// classify runs the role's structural classifier over the sampled spans.
// Classifiers depend on measurable span properties (size, weight, glyphs,
// character classes), never on text literals from one reference document.
func classify(fp *Fingerprint, role Role) *TextSpan {
	if fp == nil || len(fp.Spans) == 0 {
		return nil
	}

	switch role {
	case RoleName:
		return classifyName(fp)
	case RoleJobTitle:
		return classifyJobTitle(fp)
	case RoleContact:
		return classifyContact(fp)
	case RoleHeading:
		return classifyHeading(fp)
	case RoleBody:
		return classifyBody(fp)
	case RoleEmphasis:
		return classifyEmphasis(fp)
	case RoleBulletMarker:
		return classifyBulletMarker(fp)
	case RoleBulletContent:
		return classifyBulletContent(fp)
	case RoleDateRange:
		return classifyDateRange(fp)
	default:
		return nil
	}
}

// classifyName picks the largest-font span on the first sampled page.
func classifyName(fp *Fingerprint) *TextSpan {
	firstPage := fp.FirstPage()
	var best *TextSpan
	for i := range fp.Spans {
		span := &fp.Spans[i]
		if span.Page != firstPage || strings.TrimSpace(span.Text) == "" {
			continue
		}
		if best == nil || span.Size > best.Size {
			best = span
		}
	}
	return best
}

// classifyJobTitle picks the largest bold first-page span smaller than the
// name span.
func classifyJobTitle(fp *Fingerprint) *TextSpan {
	name := classifyName(fp)
	if name == nil {
		return nil
	}
	firstPage := fp.FirstPage()
	var best *TextSpan
	for i := range fp.Spans {
		span := &fp.Spans[i]
		if span.Page != firstPage || span.Size >= name.Size {
			continue
		}
		if !spanBold(span) {
			continue
		}
		if best == nil || span.Size > best.Size {
			best = span
		}
	}
	return best
}

// classifyContact picks the first span that looks like contact data: an
// email marker or a digit-heavy phone pattern.
func classifyContact(fp *Fingerprint) *TextSpan {
	for i := range fp.Spans {
		if strings.Contains(fp.Spans[i].Text, "@") {
			return &fp.Spans[i]
		}
	}
	for i := range fp.Spans {
		if phoneDigitsPattern.MatchString(fp.Spans[i].Text) {
			return &fp.Spans[i]
		}
	}
	return nil
}

// classifyHeading picks the modal size among short bold spans that sit above
// the body size: section headings repeat at one size, so the most frequent
// qualifying size wins over one-off large spans.
func classifyHeading(fp *Fingerprint) *TextSpan {
	body := classifyBody(fp)
	bodySize := 0.0
	if body != nil {
		bodySize = body.Size
	}

	counts := make(map[float64]int)
	for i := range fp.Spans {
		span := &fp.Spans[i]
		text := strings.TrimSpace(span.Text)
		if !spanBold(span) || text == "" || len(text) > headingTextLimit {
			continue
		}
		if span.Size <= bodySize {
			continue
		}
		counts[span.Size]++
	}

	var modalSize float64
	var modalCount int
	for size, count := range counts {
		if count > modalCount || (count == modalCount && size > modalSize) {
			modalSize, modalCount = size, count
		}
	}
	if modalCount == 0 {
		return nil
	}

	for i := range fp.Spans {
		span := &fp.Spans[i]
		if spanBold(span) && span.Size == modalSize {
			return span
		}
	}
	return nil
}

// classifyBody picks a span of the modal size among non-bold spans.
func classifyBody(fp *Fingerprint) *TextSpan {
	counts := make(map[float64]int)
	for i := range fp.Spans {
		span := &fp.Spans[i]
		if spanBold(span) || strings.TrimSpace(span.Text) == "" {
			continue
		}
		counts[span.Size]++
	}

	var modalSize float64
	var modalCount int
	for size, count := range counts {
		if count > modalCount || (count == modalCount && size > modalSize) {
			modalSize, modalCount = size, count
		}
	}
	if modalCount == 0 {
		return nil
	}

	for i := range fp.Spans {
		span := &fp.Spans[i]
		if !spanBold(span) && span.Size == modalSize {
			return span
		}
	}
	return nil
}

// classifyEmphasis picks the first bold span at body size: bold weight at
// running-text size marks emphasized body text.
func classifyEmphasis(fp *Fingerprint) *TextSpan {
	body := classifyBody(fp)
	if body == nil {
		return nil
	}
	for i := range fp.Spans {
		span := &fp.Spans[i]
		if spanBold(span) && span.Size == body.Size {
			return span
		}
	}
	return nil
}

// classifyBulletMarker picks the first span carrying the bullet glyph.
func classifyBulletMarker(fp *Fingerprint) *TextSpan {
	for i := range fp.Spans {
		text := strings.TrimSpace(fp.Spans[i].Text)
		if text == bulletGlyph || strings.HasPrefix(text, bulletGlyph) {
			return &fp.Spans[i]
		}
	}
	return nil
}

// classifyBulletContent picks the first non-bold span that follows a bullet
// marker on the same page, indented past the marker.
func classifyBulletContent(fp *Fingerprint) *TextSpan {
	for i := range fp.Spans {
		text := strings.TrimSpace(fp.Spans[i].Text)
		if text != bulletGlyph && !strings.HasPrefix(text, bulletGlyph) {
			continue
		}
		marker := &fp.Spans[i]
		for j := i + 1; j < len(fp.Spans); j++ {
			next := &fp.Spans[j]
			if next.Page != marker.Page {
				break
			}
			if !spanBold(next) && next.BBox.X0 > marker.BBox.X0 && strings.TrimSpace(next.Text) != "" {
				return next
			}
		}
	}
	return nil
}

// classifyDateRange picks the first span matching a date range pattern.
func classifyDateRange(fp *Fingerprint) *TextSpan {
	for i := range fp.Spans {
		if dateRangePattern.MatchString(fp.Spans[i].Text) {
			return &fp.Spans[i]
		}
	}
	return nil
}

// spanBold reports bold weight from either the extractor's flag or the font
// name.
func spanBold(span *TextSpan) bool {
	if span.Bold {
		return true
	}
	_, bold := NormalizeFontName(span.Font)
	return bold
}
