package template

// SectionKey names a renderable resume section in ordering tables.
type SectionKey string

const (
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionSkills         SectionKey = "skills"
	SectionEducation      SectionKey = "education"
	SectionCertifications SectionKey = "certifications"
)

// TemplateSpec declares the visual identity of a template: typographic
// scale, color palette, and spacing constants. Specs are immutable values
// loaded once at process start; Resolve copies them before returning.
type TemplateSpec struct {
	ID          string
	Font        string
	HeadingFont string
	AccentColor string
	HeaderColor string

	NameSize    float64
	TitleSize   float64
	HeadingSize float64
	EntrySize   float64
	BodySize    float64
	MetaSize    float64

	Margin  float64
	LineGap float64

	// SectionOrder is filled in by the resolver from the variant table.
	SectionOrder []SectionKey
}

// DefaultTemplateID is used when an unknown template is requested.
// Template selection is a styling concern and never a hard error.
const DefaultTemplateID = "premium_professional"

// DefaultVariant is the ordering used for unknown variants.
const DefaultVariant = "general"

func builtinTemplates() map[string]TemplateSpec {
	base := TemplateSpec{
		NameSize:    24,
		TitleSize:   14,
		HeadingSize: 12,
		EntrySize:   12,
		BodySize:    10,
		MetaSize:    10,
		Margin:      50,
		LineGap:     4,
	}

	mk := func(id, font, headingFont, accent, header string) TemplateSpec {
		spec := base
		spec.ID = id
		spec.Font = font
		spec.HeadingFont = headingFont
		spec.AccentColor = accent
		spec.HeaderColor = header
		return spec
	}

	return map[string]TemplateSpec{
		"premium_professional": mk("premium_professional", "Helvetica", "Helvetica-Bold", "#8b5cf6", "#1f2937"),
		"modern":               mk("modern", "Helvetica", "Helvetica-Bold", "#8b5cf6", "#1f2937"),
		"classic":              mk("classic", "Times-Roman", "Times-Bold", "#000000", "#000000"),
		"executive":            mk("executive", "Times-Roman", "Times-Bold", "#d97706", "#1f2937"),
		"creative":             mk("creative", "Helvetica", "Helvetica-Bold", "#8b5cf6", "#4f46e5"),
	}
}

func variantOrders() map[string][]SectionKey {
	return map[string][]SectionKey{
		"tech_saas":  {SectionSummary, SectionSkills, SectionExperience, SectionEducation},
		"industrial": {SectionSummary, SectionExperience, SectionCertifications, SectionSkills, SectionEducation},
		"leadership": {SectionSummary, SectionExperience, SectionSkills, SectionEducation},
		"general":    {SectionSummary, SectionExperience, SectionSkills, SectionEducation},
	}
}
