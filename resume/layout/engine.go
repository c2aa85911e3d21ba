package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"resume-optimizer/resume/model"
	"resume-optimizer/resume/template"
)

// Page geometry for the fixed-size PDF backend, in points (US Letter).
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	// pageContentLimit is the running-position threshold past which a page
	// break is inserted. Fixed for the PDF backend; DOCX reflows.
	pageContentLimit = 700.0
)

// Content policy constants. Fixed, not configurable.
const (
	summaryMaxRunes   = 320
	maxBulletsPerRole = 5
	ellipsisMarker    = "..."
)

const (
	bodyColor = "#333333"
	metaColor = "#666666"
	inkColor  = "#000000"
)

// Layout converts a structured resume into an ordered block sequence using
// the resolved template and merged render config. The result is
// deterministic for identical inputs; both renderer backends consume it
// unchanged, which is what keeps PDF and DOCX output equivalent.
func Layout(resume model.ParsedResume, spec template.TemplateSpec, cfg template.RenderConfig) []Block {
	resume.Normalize()

	font := cfg.Font
	if font == "" {
		font = spec.Font
	}
	headingFont := cfg.HeadingFont
	if headingFont == "" {
		headingFont = spec.HeadingFont
	}
	accent := cfg.AccentColor
	if accent == "" {
		accent = spec.AccentColor
	}

	b := &builder{
		margin: spec.Margin,
		width:  PageWidth - 2*spec.Margin,
		y:      spec.Margin,
		page:   1,
	}

	name := resume.Name
	if name == "" {
		name = "Your Name"
	}
	b.add(Block{
		Kind: BlockHeading, Level: LevelName, Text: name,
		Font: headingFont, Bold: true, Size: spec.NameSize, Color: spec.HeaderColor,
		SpaceAfter: 8,
	})

	if resume.Title != "" {
		b.add(Block{
			Kind: BlockParagraph, Text: resume.Title,
			Font: font, Size: spec.TitleSize, Color: metaColor,
			SpaceAfter: 6,
		})
	}

	if contact := resume.ContactLine(); contact != "" {
		b.add(Block{
			Kind: BlockParagraph, Text: contact,
			Font: font, Size: spec.MetaSize, Color: bodyColor,
			SpaceAfter: 20,
		})
	}

	for _, section := range spec.SectionOrder {
		switch section {
		case template.SectionSummary:
			b.summary(resume, spec, font, headingFont, accent)
		case template.SectionExperience:
			b.experience(resume, spec, font, headingFont, accent)
		case template.SectionSkills:
			b.skills(resume, spec, font, headingFont, accent)
		case template.SectionEducation:
			b.education(resume, spec, font, headingFont, accent)
		case template.SectionCertifications:
			b.certifications(resume, spec, font, headingFont, accent)
		}
	}

	return b.blocks
}

// ClampSummary truncates a summary to the maximum display length, appending
// an ellipsis marker when text was cut.
func ClampSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= summaryMaxRunes {
		return summary
	}
	return strings.TrimRight(string(runes[:summaryMaxRunes]), " ") + ellipsisMarker
}

type builder struct {
	blocks []Block
	margin float64
	width  float64
	y      float64
	page   int
}

func (b *builder) sectionHeading(text string, spec template.TemplateSpec, headingFont, accent string) {
	b.add(Block{
		Kind: BlockHeading, Level: LevelSection, Text: text,
		Font: headingFont, Bold: true, Size: spec.HeadingSize, Color: accent,
		Underline:  true,
		SpaceAfter: 10,
	})
}

func (b *builder) summary(resume model.ParsedResume, spec template.TemplateSpec, font, headingFont, accent string) {
	if resume.Summary == "" {
		return
	}
	b.sectionHeading("PROFESSIONAL SUMMARY", spec, headingFont, accent)
	b.add(Block{
		Kind: BlockParagraph, Text: ClampSummary(resume.Summary),
		Font: font, Size: spec.BodySize, Color: bodyColor,
		SpaceAfter: 20,
	})
}

func (b *builder) experience(resume model.ParsedResume, spec template.TemplateSpec, font, headingFont, accent string) {
	if len(resume.Experience) == 0 {
		return
	}
	b.sectionHeading("EXPERIENCE", spec, headingFont, accent)

	for _, exp := range resume.Experience {
		title := exp.Title
		if title == "" {
			title = "Position"
		}
		if exp.Company != "" {
			title += " - " + exp.Company
		}
		b.add(Block{
			Kind: BlockHeading, Level: LevelEntry, Text: title,
			Font: headingFont, Bold: true, Size: spec.EntrySize, Color: inkColor,
			SpaceAfter: 4,
		})

		if exp.Period != "" {
			b.add(Block{
				Kind: BlockParagraph, Text: exp.Period,
				Font: font, Size: spec.MetaSize, Color: metaColor,
				SpaceAfter: 4,
			})
		}

		bullets := exp.Bullets
		if len(bullets) > maxBulletsPerRole {
			bullets = bullets[:maxBulletsPerRole]
		}
		if len(bullets) > 0 {
			for _, bullet := range bullets {
				b.add(Block{
					Kind: BlockBullet, Text: bullet,
					Font: font, Size: spec.BodySize, Color: bodyColor,
					Indent:     14,
					SpaceAfter: 4,
				})
			}
		} else if exp.Description != "" {
			b.add(Block{
				Kind: BlockParagraph, Text: exp.Description,
				Font: font, Size: spec.BodySize, Color: bodyColor,
				Indent:     10,
				SpaceAfter: 6,
			})
		}
		b.pad(10)
	}
	b.pad(10)
}

func (b *builder) skills(resume model.ParsedResume, spec template.TemplateSpec, font, headingFont, accent string) {
	if len(resume.Skills) == 0 {
		return
	}
	b.sectionHeading("SKILLS", spec, headingFont, accent)

	for _, group := range GroupSkills(resume.Skills) {
		if len(group.Skills) == 0 {
			continue
		}
		b.add(Block{
			Kind: BlockParagraph, Text: group.Name,
			Font: headingFont, Bold: true, Size: spec.MetaSize, Color: inkColor,
			SpaceAfter: 2,
		})
		b.add(Block{
			Kind: BlockParagraph, Text: strings.Join(group.Skills, ", "),
			Font: font, Size: spec.BodySize, Color: bodyColor,
			SpaceAfter: 8,
		})
	}
	b.pad(12)
}

func (b *builder) education(resume model.ParsedResume, spec template.TemplateSpec, font, headingFont, accent string) {
	if len(resume.Education) == 0 {
		return
	}
	b.sectionHeading("EDUCATION", spec, headingFont, accent)

	for _, edu := range resume.Education {
		degree := edu.Degree
		if degree == "" {
			degree = "Degree"
		}
		b.add(Block{
			Kind: BlockHeading, Level: LevelEntry, Text: degree,
			Font: headingFont, Bold: true, Size: spec.EntrySize, Color: inkColor,
			SpaceAfter: 4,
		})

		meta := make([]string, 0, 2)
		if edu.School != "" {
			meta = append(meta, edu.School)
		}
		if edu.Year != "" {
			meta = append(meta, edu.Year)
		}
		if len(meta) > 0 {
			b.add(Block{
				Kind: BlockParagraph, Text: strings.Join(meta, " | "),
				Font: font, Size: spec.MetaSize, Color: metaColor,
				SpaceAfter: 3,
			})
		}

		if edu.Details != "" {
			b.add(Block{
				Kind: BlockParagraph, Text: edu.Details,
				Font: font, Size: spec.BodySize, Color: bodyColor,
				SpaceAfter: 6,
			})
		}
		b.pad(6)
	}
}

func (b *builder) certifications(resume model.ParsedResume, spec template.TemplateSpec, font, headingFont, accent string) {
	if len(resume.Certifications) == 0 {
		return
	}
	b.sectionHeading("CERTIFICATIONS", spec, headingFont, accent)

	for _, cert := range resume.Certifications {
		b.add(Block{
			Kind: BlockBullet, Text: cert,
			Font: font, Size: spec.BodySize, Color: bodyColor,
			Indent:     14,
			SpaceAfter: 4,
		})
	}
	b.pad(10)
}

// add assigns a page and vertical position to the block, inserting a page
// break first when the projected position would cross the content limit.
func (b *builder) add(blk Block) {
	blk.Height = b.estimateHeight(blk)
	if b.y+blk.Height > pageContentLimit && len(b.blocks) > 0 {
		b.page++
		b.y = b.margin
		b.blocks = append(b.blocks, Block{Kind: BlockPageBreak, Page: b.page})
	}
	blk.Page = b.page
	blk.Y = b.y
	b.blocks = append(b.blocks, blk)
	b.y += blk.Height + blk.SpaceAfter
}

// pad advances the cursor without emitting a block.
func (b *builder) pad(gap float64) {
	b.y += gap
}

// estimateHeight projects the rendered height of the block from its font
// size and an average glyph width. The estimate only needs to be
// deterministic and conservative enough for pagination.
func (b *builder) estimateHeight(blk Block) float64 {
	lineHeight := blk.Size * 1.35
	width := b.width - blk.Indent
	if blk.Kind == BlockBullet {
		width -= 12
	}
	charWidth := blk.Size * 0.5
	perLine := math.Max(1, math.Floor(width/charWidth))
	lines := math.Ceil(float64(utf8.RuneCountInString(blk.Text)) / perLine)
	if lines < 1 {
		lines = 1
	}
	h := lines * lineHeight
	if blk.Underline {
		h += 5
	}
	return h
}
