package template

import "strings"

// Overrides carries the caller-supplied styling adjustments for one
// generation call. It is a fully-typed struct rather than a free-form map;
// unknown keys in incoming JSON are ignored by decoding, never rejected.
type Overrides struct {
	Variant     string `json:"variant,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
	Font        string `json:"font,omitempty"`
}

// RenderConfig is the merged styling parameters governing one document
// generation call: template defaults with overrides applied field by field.
type RenderConfig struct {
	Variant     string `json:"variant"`
	AccentColor string `json:"accentColor"`
	Font        string `json:"font"`
	HeadingFont string `json:"headingFont"`
}

// MergeConfig applies overrides onto a template's defaults. Empty override
// fields fall back to the template default.
func MergeConfig(spec TemplateSpec, o Overrides) RenderConfig {
	cfg := RenderConfig{
		Variant:     DefaultVariant,
		AccentColor: spec.AccentColor,
		Font:        spec.Font,
		HeadingFont: spec.HeadingFont,
	}
	if v := strings.TrimSpace(o.Variant); v != "" {
		cfg.Variant = v
	}
	if v := strings.TrimSpace(o.AccentColor); v != "" {
		cfg.AccentColor = v
	}
	if v := strings.TrimSpace(o.Font); v != "" {
		cfg.Font = v
		cfg.HeadingFont = boldVariant(v)
	}
	return cfg
}

// boldVariant maps a body font family to its bold face using the core
// PostScript naming the renderers rely on.
func boldVariant(font string) string {
	switch font {
	case "Times-Roman", "Times":
		return "Times-Bold"
	case "Courier":
		return "Courier-Bold"
	default:
		return "Helvetica-Bold"
	}
}
