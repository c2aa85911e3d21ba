package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-optimizer/internal/shared/storage/object"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// UnsupportedFormatError is returned when the file extension is not one of
// pdf, doc, docx, or txt. It is terminal; the user must resubmit.
type UnsupportedFormatError struct {
	Ext string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Ext)
}

// ExtractionError is returned when a decoder fails on a file of a supported
// format. It is distinct from a successful-but-empty extraction.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e ExtractionError) Unwrap() error { return e.Err }

// DetectFormat maps a file name or bare extension to a supported format.
// Pure, no side effects.
func DetectFormat(fileName string) (Format, error) {
	ext := strings.ToLower(strings.TrimSpace(fileName))
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx+1:]
	}
	switch Format(ext) {
	case FormatPDF, FormatDOC, FormatDOCX, FormatTXT:
		return Format(ext), nil
	default:
		return "", UnsupportedFormatError{Ext: ext}
	}
}

// ExtractText pulls text from a stored object and persists a derived
// .extracted.txt copy next to the original.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	format, err := DetectFormat(fileName)
	if err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s format=%s: %w", fileKey, format, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s format=%s: read: %w", fileKey, format, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, format)
	if err != nil {
		return "", err
	}

	extractedKey := fileKey + ".extracted.txt"
	if err := saveExtracted(ctx, store, extractedKey, text); err != nil {
		return "", fmt.Errorf("extract text key=%s format=%s: %w", fileKey, format, err)
	}

	return text, nil
}

// ExtractTextFromBytes decodes an in-memory payload of the given format.
// A decode failure returns ExtractionError; callers can distinguish it from
// an empty but valid document.
func ExtractTextFromBytes(ctx context.Context, data []byte, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch format {
	case FormatTXT:
		return extractPlain(data)
	case FormatPDF:
		return extractPDF(data)
	case FormatDOC, FormatDOCX:
		return extractDOCX(data, format)
	default:
		return "", UnsupportedFormatError{Ext: string(format)}
	}
}

func saveExtracted(ctx context.Context, store object.ObjectStore, key string, text string) error {
	_, err := store.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text))
	return err
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ExtractionError{Format: FormatTXT, Err: errors.New("not valid utf-8 text")}
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", ExtractionError{Format: FormatPDF, Err: err}
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", ExtractionError{Format: FormatPDF, Err: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", ExtractionError{Format: FormatPDF, Err: err}
	}
	return buf.String(), nil
}

func extractDOCX(data []byte, format Format) (string, error) {
	if len(data) == 0 {
		return "", ExtractionError{Format: format, Err: errors.New("empty document")}
	}
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", ExtractionError{Format: format, Err: err}
	}
	defer doc.Close()

	return stripWordXML(doc.Editable().GetContent()), nil
}

// stripWordXML reduces word/document.xml markup to plain paragraph text.
func stripWordXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// BaseName returns the file name without directory or extension, used when
// deriving generated file names from an upload.
func BaseName(fileName string) string {
	base := filepath.Base(fileName)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
