package render

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"resume-optimizer/internal/extract"
	"resume-optimizer/resume/layout"
	"resume-optimizer/resume/model"
	"resume-optimizer/resume/template"
)

func sampleResume() model.ParsedResume {
	return model.ParsedResume{
		Name:    "Jordan Rivera",
		Email:   "jordan@example.com",
		Phone:   "555-123-4567",
		Title:   "Platform Engineer",
		Summary: "Engineer with a decade of infrastructure work.",
		Experience: []model.Experience{
			{Title: "Staff Engineer", Company: "Acme", Period: "2019 - Present",
				Bullets: []string{"Led the migration", "Cut costs"}},
		},
		Education: []model.Education{
			{Degree: "BS Computer Science", School: "State University", Year: "2012"},
		},
		Skills: []string{"Python", "AWS", "Jira", "Leadership"},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPDF, false},
		{"pdf", FormatPDF, false},
		{"docx", FormatDOCX, false},
		{"doc", "", true},
		{"html", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			var ufe *UnsupportedFormatError
			if !errors.As(err, &ufe) {
				t.Errorf("ParseFormat(%q): expected UnsupportedFormatError, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	doc, err := New().Render(sampleResume(), FormatPDF, "modern", template.Overrides{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.MIMEType != "application/pdf" || doc.Ext != ".pdf" {
		t.Fatalf("bad metadata: %+v", doc)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}

	r, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	if r.NumPage() < 1 {
		t.Fatal("rendered PDF has no pages")
	}
}

func TestRenderPDFPaginates(t *testing.T) {
	r := sampleResume()
	for i := 0; i < 12; i++ {
		r.Experience = append(r.Experience, model.Experience{
			Title: "Senior Engineer", Company: "Globex", Period: "2015 - 2019",
			Bullets: []string{
				"Owned the deployment pipeline for a fleet of services",
				"Mentored new hires across two teams",
				"Reduced incident response time by half",
			},
		})
	}

	doc, err := New().Render(r, FormatPDF, "classic", template.Overrides{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	if reader.NumPage() < 2 {
		t.Fatalf("long resume rendered on %d page(s)", reader.NumPage())
	}
}

func TestRenderDOCXRoundTrips(t *testing.T) {
	doc, err := New().Render(sampleResume(), FormatDOCX, "modern", template.Overrides{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Ext != ".docx" {
		t.Fatalf("bad extension %q", doc.Ext)
	}

	text, err := extract.ExtractTextFromBytes(context.Background(), doc.Data, extract.FormatDOCX)
	if err != nil {
		t.Fatalf("extracting rendered DOCX: %v", err)
	}
	for _, want := range []string{
		"Jordan Rivera",
		"Platform Engineer",
		"PROFESSIONAL SUMMARY",
		"EXPERIENCE",
		"Staff Engineer - Acme",
		"SKILLS",
		"EDUCATION",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered DOCX missing %q", want)
		}
	}
}

// docxPart reads one file out of a rendered DOCX package.
func docxPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(raw)
	}
	t.Fatalf("package has no %s", name)
	return ""
}

// pdfText extracts the plain text of a rendered PDF.
func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		t.Fatalf("extract pdf text: %v", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		t.Fatalf("copy pdf text: %v", err)
	}
	return buf.String()
}

// squash removes all whitespace so text comparisons survive PDF extraction's
// spacing quirks and DOCX line breaks.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func assertHeadingOrder(t *testing.T, label, text string, headings []string) {
	t.Helper()
	last := -1
	for _, heading := range headings {
		idx := strings.Index(text, squash(heading))
		if idx < 0 {
			t.Fatalf("%s missing heading %q", label, heading)
		}
		if idx < last {
			t.Fatalf("%s heading %q out of order", label, heading)
		}
		last = idx
	}
}

func TestRenderFormatsShareContentOrder(t *testing.T) {
	resume := sampleResume()
	resume.Summary = strings.Repeat("focused delivery across platform teams ", 11)

	docx, err := New().Render(resume, FormatDOCX, "modern", template.Overrides{Variant: "tech_saas"})
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}
	docxText, err := extract.ExtractTextFromBytes(context.Background(), docx.Data, extract.FormatDOCX)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	pdfDoc, err := New().Render(resume, FormatPDF, "modern", template.Overrides{Variant: "tech_saas"})
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}

	order := []string{"PROFESSIONAL SUMMARY", "SKILLS", "EXPERIENCE", "EDUCATION"}
	flatDocx := squash(docxText)
	flatPDF := squash(pdfText(t, pdfDoc.Data))
	assertHeadingOrder(t, "docx", flatDocx, order)
	assertHeadingOrder(t, "pdf", flatPDF, order)

	clamped := squash(layout.ClampSummary(resume.Summary))
	full := squash(resume.Summary)
	for label, flat := range map[string]string{"docx": flatDocx, "pdf": flatPDF} {
		if !strings.Contains(flat, clamped) {
			t.Fatalf("%s missing truncated summary", label)
		}
		if strings.Contains(flat, full) {
			t.Fatalf("%s carries the untruncated summary", label)
		}
	}
}

func TestRenderDOCXBulletsAreListParagraphs(t *testing.T) {
	doc, err := New().Render(sampleResume(), FormatDOCX, "modern", template.Overrides{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	documentXML := docxPart(t, doc.Data, "word/document.xml")
	if !strings.Contains(documentXML, `<w:pStyle w:val="ListParagraph"`) {
		t.Fatal("bullets should carry the ListParagraph style")
	}
	if !strings.Contains(documentXML, `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`) {
		t.Fatal("bullets should reference the numbering definition")
	}
	if strings.Contains(documentXML, "•") {
		t.Fatal("bullet glyph should come from numbering, not paragraph text")
	}

	numberingXML := docxPart(t, doc.Data, "word/numbering.xml")
	if !strings.Contains(numberingXML, `<w:numFmt w:val="bullet"/>`) {
		t.Fatal("numbering part should define a bullet format")
	}
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	if _, err := New().Render(sampleResume(), FormatPDF, "no-such-template", template.Overrides{Variant: "bogus"}); err != nil {
		t.Fatalf("unknown template should fall back, got %v", err)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := New().Render(sampleResume(), Format("html"), "modern", template.Overrides{})
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	r := sampleResume()
	r.Summary = `Shipped <fast> & "reliable" systems`
	doc, err := New().Render(r, FormatDOCX, "classic", template.Overrides{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text, err := extract.ExtractTextFromBytes(context.Background(), doc.Data, extract.FormatDOCX)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, `Shipped <fast> & "reliable" systems`) {
		t.Fatal("special characters did not survive the round trip")
	}
}
