package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	localstore "resume-optimizer/internal/shared/storage/object/local"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Format
		ok   bool
	}{
		{"pdf file", "resume.pdf", FormatPDF, true},
		{"docx file", "My Resume.DOCX", FormatDOCX, true},
		{"doc file", "old.doc", FormatDOC, true},
		{"txt file", "plain.txt", FormatTXT, true},
		{"bare extension", "pdf", FormatPDF, true},
		{"dotted extension", ".docx", FormatDOCX, true},
		{"image", "photo.jpg", "", false},
		{"rtf", "resume.rtf", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormat(tc.in)
			if tc.ok {
				if err != nil {
					t.Fatalf("DetectFormat(%q) error: %v", tc.in, err)
				}
				if got != tc.want {
					t.Fatalf("DetectFormat(%q) = %q, want %q", tc.in, got, tc.want)
				}
				return
			}
			var unsupported UnsupportedFormatError
			if !errors.As(err, &unsupported) {
				t.Fatalf("DetectFormat(%q) err = %v, want UnsupportedFormatError", tc.in, err)
			}
		})
	}
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text := "Jane Doe\nSenior Engineer\n"
	got, err := ExtractTextFromBytes(context.Background(), []byte(text), FormatTXT)
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if got != text {
		t.Fatalf("expected verbatim text, got %q", got)
	}
}

func TestExtractTextFromBytes_InvalidUTF8(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte{0xff, 0xfe, 0x00}, FormatTXT)
	var extractionErr ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.Format != FormatTXT {
		t.Fatalf("expected txt format in error, got %s", extractionErr.Format)
	}
}

func TestExtractTextFromBytes_DocxParagraphs(t *testing.T) {
	data := buildTestDocx(t, []string{"John Smith", "EXPERIENCE", "Engineer at Acme"})
	got, err := ExtractTextFromBytes(context.Background(), data, FormatDOCX)
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	for _, want := range []string{"John Smith", "EXPERIENCE", "Engineer at Acme"} {
		if !strings.Contains(got, want) {
			t.Fatalf("extracted text missing %q: %q", want, got)
		}
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 paragraph lines, got %d: %q", len(lines), got)
	}
}

func TestExtractTextFromBytes_CorruptDocx(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a zip archive"), FormatDOCX)
	var extractionErr ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError for corrupt docx, got %v", err)
	}
}

func TestExtractTextFromBytes_CorruptPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 truncated"), FormatPDF)
	var extractionErr ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError for corrupt pdf, got %v", err)
	}
}

func TestExtractTextFromBytes_UnsupportedNeverDecodes(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte{0x01, 0x02}, Format("rtf"))
	var unsupported UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":          "resume",
		"dir/My Resume.docx":  "My Resume",
		"noext":               "noext",
		".hidden":             ".hidden",
		"double.dots.tar.txt": "double.dots.tar",
	}
	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

// buildTestDocx assembles a minimal OOXML package with one paragraph per line.
func buildTestDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name    string
		content string
	}{
		{"word/document.xml", body.String()},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", entry.name, err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			t.Fatalf("write zip entry %s: %v", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextPersistsDerivedCopy(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(t.TempDir())

	key, _, _, err := store.Save(ctx, "user-1", "resume.txt", strings.NewReader("Jane Smith\nGo, Postgres"))
	if err != nil {
		t.Fatalf("save original: %v", err)
	}

	text, err := ExtractText(ctx, store, key, "resume.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Jane Smith") {
		t.Fatalf("extracted text = %q", text)
	}

	derived, err := store.Open(ctx, key+".extracted.txt")
	if err != nil {
		t.Fatalf("open derived copy: %v", err)
	}
	defer derived.Close()
	raw, err := io.ReadAll(derived)
	if err != nil {
		t.Fatalf("read derived copy: %v", err)
	}
	if string(raw) != text {
		t.Fatal("derived copy does not match extracted text")
	}
}
