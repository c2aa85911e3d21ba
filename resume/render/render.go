package render

import (
	"fmt"

	"resume-optimizer/resume/layout"
	"resume-optimizer/resume/model"
	"resume-optimizer/resume/template"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat normalizes a user-supplied format string. Empty defaults to PDF.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Requested: s}
	}
}

// Document is a fully rendered export, ready to persist or stream.
type Document struct {
	Data     []byte
	Format   Format
	MIMEType string
	Ext      string
}

type UnsupportedFormatError struct {
	Requested string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Requested)
}

// RenderError wraps a backend failure with the format being produced.
type RenderError struct {
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer turns structured resumes into export documents. Both backends
// consume the same block sequence, so a PDF and a DOCX rendered from the
// same resume carry the same content in the same order.
type Renderer struct {
	resolver *template.Resolver
}

func New() *Renderer {
	return &Renderer{resolver: template.NewResolver()}
}

// NewWithResolver lets callers supply a template table, mainly for tests.
func NewWithResolver(resolver *template.Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Render produces a document for the resume. Unknown template IDs and
// variants fall back to defaults; only backend failures return an error.
func (r *Renderer) Render(resume model.ParsedResume, format Format, templateID string, overrides template.Overrides) (*Document, error) {
	spec := r.resolver.Resolve(templateID, overrides.Variant)
	cfg := template.MergeConfig(spec, overrides)
	blocks := layout.Layout(resume, spec, cfg)

	switch format {
	case FormatPDF:
		data, err := renderPDF(blocks, spec)
		if err != nil {
			return nil, &RenderError{Format: FormatPDF, Err: err}
		}
		return &Document{
			Data:     data,
			Format:   FormatPDF,
			MIMEType: "application/pdf",
			Ext:      ".pdf",
		}, nil
	case FormatDOCX:
		data, err := renderDOCX(blocks, spec)
		if err != nil {
			return nil, &RenderError{Format: FormatDOCX, Err: err}
		}
		return &Document{
			Data:     data,
			Format:   FormatDOCX,
			MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Ext:      ".docx",
		}, nil
	default:
		return nil, &UnsupportedFormatError{Requested: string(format)}
	}
}
