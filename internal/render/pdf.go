package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-forge/internal/style"
)

// lineHeightFactor converts a font size into a line height.
const lineHeightFactor = 1.2

const topMargin = 54.0

// bulletGlyph is written before bullet block content.
const bulletGlyph = "•"

// FontFile is one TrueType file to register with the PDF writer.
type FontFile struct {
	Family string
	Style  string // "" regular, "B" bold
	Path   string
}

// Renderer writes block lists to PDF using a style sheet.
type Renderer struct {
	sheet      style.Sheet
	leftMargin float64
	fonts      []FontFile
	families   map[string]bool
}

// NewRenderer builds a renderer around an inferred style sheet and left
// margin. Extra font files widen the set of renderable families.
func NewRenderer(sheet style.Sheet, leftMargin float64, fonts ...FontFile) *Renderer {
	families := make(map[string]bool, len(fonts))
	for _, f := range fonts {
		families[f.Family] = true
	}
	return &Renderer{sheet: sheet, leftMargin: leftMargin, fonts: fonts, families: families}
}

// Registered reports whether a font family can be rendered. It is the
// predicate to pass to style inference so sampled fonts without a font file
// fall back before they reach the writer.
func (r *Renderer) Registered(family string) bool {
	return r.families[family] || style.DefaultRegistered(family)
}

// RenderFile lays out the document and writes it to path, creating parent
// directories as needed.
func (r *Renderer) RenderFile(doc *Document, path string) error {
	blocks, err := BuildBlocks(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	for _, f := range r.fonts {
		pdf.AddUTF8Font(f.Family, f.Style, f.Path)
	}
	pdf.SetMargins(r.leftMargin, topMargin, r.leftMargin)
	pdf.SetAutoPageBreak(true, topMargin)
	pdf.AddPage()

	for _, block := range blocks {
		r.writeBlock(pdf, block)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) styleFor(role style.Role) style.StyleDef {
	if def, ok := r.sheet[role]; ok && def.Size > 0 {
		return def
	}
	return style.DefaultStyle(role)
}

func (r *Renderer) writeBlock(pdf *fpdf.Fpdf, block Block) {
	def := r.styleFor(block.Role)
	height := def.Size * lineHeightFactor

	if def.SpaceBefore > 0 {
		pdf.Ln(def.SpaceBefore)
	}

	left := r.leftMargin
	if block.Bullet {
		// The marker sits at the text indent plus the hanging offset;
		// wrapped lines align at the indent.
		markerDef := r.styleFor(style.RoleBulletMarker)
		markerX := left + markerDef.Indent + markerDef.HangingIndent
		pdf.SetX(markerX)
		r.setFont(pdf, markerDef, false)
		pdf.CellFormat(left+def.Indent-markerX, height, bulletGlyph, "", 0, "L", false, 0, "")
		pdf.SetLeftMargin(left + def.Indent)
		pdf.SetX(left + def.Indent)
	} else if def.Alignment == style.AlignCenter {
		r.writeCentered(pdf, def, block, height)
		pdf.Ln(height + def.SpaceAfter + block.SpacerAfter)
		return
	}

	for _, seg := range block.Segments {
		r.setFont(pdf, def, seg.Bold)
		pdf.Write(height, seg.Text)
	}

	if block.Bullet {
		pdf.SetLeftMargin(left)
	}
	pdf.Ln(height + def.SpaceAfter + block.SpacerAfter)
}

// writeCentered joins the block into one centered cell. Centered roles are
// header lines, which carry a single weight, so per-segment weights collapse
// to the style's own.
func (r *Renderer) writeCentered(pdf *fpdf.Fpdf, def style.StyleDef, block Block, height float64) {
	text := ""
	for _, seg := range block.Segments {
		text += seg.Text
	}
	r.setFont(pdf, def, def.Bold)
	pageWidth, _ := pdf.GetPageSize()
	pdf.CellFormat(pageWidth-2*r.leftMargin, height, text, "", 0, "C", false, 0, "")
}

func (r *Renderer) setFont(pdf *fpdf.Fpdf, def style.StyleDef, bold bool) {
	styleStr := ""
	if bold || def.Bold {
		styleStr = "B"
	}
	family := def.Font
	if !r.Registered(family) {
		family = style.GenericFamily
	}
	// A registered TTF may lack a bold face; fall back to the regular one.
	if styleStr == "B" && r.families[family] && !r.hasBold(family) {
		styleStr = ""
	}
	pdf.SetFont(family, styleStr, def.Size)
}

func (r *Renderer) hasBold(family string) bool {
	for _, f := range r.fonts {
		if f.Family == family && f.Style == "B" {
			return true
		}
	}
	return false
}
