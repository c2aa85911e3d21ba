package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"resume-optimizer/resume/layout"
	"resume-optimizer/resume/template"
)

// renderPDF draws the block sequence onto fixed-size Letter pages. Positions
// come from the layout pass; auto page breaking stays off so both backends
// paginate identically.
func renderPDF(blocks []layout.Block, spec template.TemplateSpec) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(spec.Margin, spec.Margin, spec.Margin)
	doc.AddPage()

	// Core fonts are CP1252; translate block text out of UTF-8.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, blk := range blocks {
		if blk.Kind == layout.BlockPageBreak {
			doc.AddPage()
			continue
		}

		family, style := pdfFont(blk.Font, blk.Bold)
		doc.SetFont(family, style, blk.Size)

		cr, cg, cb := hexRGB(blk.Color)
		doc.SetTextColor(cr, cg, cb)

		x := spec.Margin + blk.Indent
		width := layout.PageWidth - 2*spec.Margin - blk.Indent
		lineHeight := blk.Size * 1.35

		if blk.Kind == layout.BlockBullet {
			doc.Text(x, blk.Y+blk.Size, tr("•"))
			x += 12
			width -= 12
		}

		doc.SetLeftMargin(x)
		doc.SetXY(x, blk.Y)
		doc.MultiCell(width, lineHeight, tr(blk.Text), "", "L", false)
		doc.SetLeftMargin(spec.Margin)

		if blk.Underline {
			doc.SetDrawColor(cr, cg, cb)
			doc.SetLineWidth(1)
			ly := blk.Y + blk.Size + 4
			doc.Line(spec.Margin, ly, layout.PageWidth-spec.Margin, ly)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfFont maps a template font name onto a core font family and style.
func pdfFont(name string, bold bool) (family, style string) {
	base := name
	if i := strings.IndexByte(name, '-'); i > 0 {
		base = name[:i]
		if strings.Contains(name[i+1:], "Bold") {
			bold = true
		}
	}
	switch base {
	case "Times":
		family = "Times"
	case "Courier":
		family = "Courier"
	default:
		family = "Helvetica"
	}
	if bold {
		style = "B"
	}
	return family, style
}

// hexRGB parses a "#rrggbb" color, falling back to black.
func hexRGB(s string) (int, int, int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
