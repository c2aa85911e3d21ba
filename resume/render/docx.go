package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"resume-optimizer/resume/layout"
	"resume-optimizer/resume/template"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const docxContentTypes = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`</Types>`

const docxRootRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

// docxNumbering defines the single bullet list every BlockBullet paragraph
// references through numId 1.
const docxNumbering = xmlHeader +
	`<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:abstractNum w:abstractNumId="0">` +
	`<w:lvl w:ilvl="0">` +
	`<w:start w:val="1"/>` +
	`<w:numFmt w:val="bullet"/>` +
	`<w:lvlText w:val="&#8226;"/>` +
	`<w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="180"/></w:pPr>` +
	`</w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`

// renderDOCX writes the block sequence as a minimal OOXML package. Word and
// LibreOffice reflow paragraphs themselves, so positional fields on the
// blocks are ignored apart from explicit page breaks.
func renderDOCX(blocks []layout.Block, spec template.TemplateSpec) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/styles.xml", docxStyles(spec)},
		{"word/numbering.xml", docxNumbering},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/document.xml", docxDocument(blocks)},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(e.data)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func docxStyles(spec template.TemplateSpec) string {
	font := docxFont(spec.Font)
	return xmlHeader +
		`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:docDefaults><w:rPrDefault><w:rPr>` +
		fmt.Sprintf(`<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, font, font) +
		fmt.Sprintf(`<w:sz w:val="%d"/>`, int(spec.BodySize*2)) +
		`</w:rPr></w:rPrDefault></w:docDefaults>` +
		`<w:style w:type="paragraph" w:styleId="ListParagraph">` +
		`<w:name w:val="List Paragraph"/>` +
		`<w:pPr><w:ind w:left="360"/><w:contextualSpacing/></w:pPr>` +
		`</w:style>` +
		`</w:styles>`
}

func docxDocument(blocks []layout.Block) string {
	var body bytes.Buffer
	body.WriteString(xmlHeader)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, blk := range blocks {
		if blk.Kind == layout.BlockPageBreak {
			body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
			continue
		}
		writeDocxParagraph(&body, blk)
	}

	// US Letter with the layout margin, both in twips.
	body.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1000" w:right="1000" w:bottom="1000" w:left="1000"/>` +
		`</w:sectPr>`)
	body.WriteString(`</w:body></w:document>`)
	return body.String()
}

func writeDocxParagraph(w *bytes.Buffer, blk layout.Block) {
	w.WriteString(`<w:p><w:pPr>`)
	if blk.Kind == layout.BlockBullet {
		w.WriteString(`<w:pStyle w:val="ListParagraph"/>` +
			`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
	}
	fmt.Fprintf(w, `<w:spacing w:after="%d"/>`, twips(blk.SpaceAfter))
	if in := twips(blk.Indent); in > 0 {
		fmt.Fprintf(w, `<w:ind w:left="%d"/>`, in)
	}
	w.WriteString(`</w:pPr><w:r><w:rPr>`)

	font := docxFont(blk.Font)
	fmt.Fprintf(w, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, font, font)
	if blk.Bold || strings.Contains(blk.Font, "Bold") {
		w.WriteString(`<w:b/>`)
	}
	if blk.Underline {
		w.WriteString(`<w:u w:val="single"/>`)
	}
	if c := docxColor(blk.Color); c != "" {
		fmt.Fprintf(w, `<w:color w:val="%s"/>`, c)
	}
	fmt.Fprintf(w, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, int(blk.Size*2), int(blk.Size*2))
	w.WriteString(`</w:rPr>`)

	for i, line := range strings.Split(blk.Text, "\n") {
		if i > 0 {
			w.WriteString(`<w:br/>`)
		}
		w.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(w, []byte(line))
		w.WriteString(`</w:t>`)
	}
	w.WriteString(`</w:r></w:p>`)
}

// twips converts points to twentieths of a point.
func twips(pt float64) int {
	return int(pt * 20)
}

// docxFont maps a template font name onto a Word font family. Bold faces
// collapse to the base family; weight is carried by the run properties.
func docxFont(name string) string {
	base := name
	if i := strings.IndexByte(name, '-'); i > 0 {
		base = name[:i]
	}
	switch base {
	case "Times":
		return "Times New Roman"
	case "Courier":
		return "Courier New"
	default:
		return "Helvetica"
	}
}

// docxColor converts "#rrggbb" to the uppercase hex Word expects.
func docxColor(s string) string {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ""
	}
	return strings.ToUpper(s)
}
