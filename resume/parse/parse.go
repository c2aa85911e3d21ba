package parse

import (
	"strings"
	"unicode/utf8"

	"resume-optimizer/resume/model"
)

// Parser turns extracted plain text into a structured resume record.
// The zero value is not usable; construct with New or NewWithHeuristics.
type Parser struct {
	h Heuristics
}

// New returns a Parser with the default heuristics.
func New() *Parser {
	return &Parser{h: DefaultHeuristics()}
}

// NewWithHeuristics returns a Parser with a caller-supplied rule set.
func NewWithHeuristics(h Heuristics) *Parser {
	return &Parser{h: h}
}

// Parse segments the text into sections and extracts structured fields.
// A document with no recognizable section headers yields only the name
// (first non-empty line); that is a valid outcome, not an error.
func (p *Parser) Parse(text string) model.ParsedResume {
	resume := model.ParsedResume{}
	resume.Normalize()

	if match := p.h.Email.FindString(text); match != "" {
		resume.Email = match
	}
	if match := p.h.Phone.FindString(text); match != "" {
		resume.Phone = strings.TrimSpace(match)
	}

	var current Section
	var active bool
	var accum []string
	nonEmptyIdx := 0

	flush := func() {
		if !active {
			return
		}
		content := strings.TrimSpace(strings.Join(accum, "\n"))
		if content != "" {
			p.applySection(&resume, current, content)
		}
		accum = accum[:0]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			// Blank lines separate paragraphs inside a section but are
			// otherwise ignored.
			if active {
				accum = append(accum, "")
			}
			continue
		}

		if nonEmptyIdx == 0 {
			resume.Name = line
		}

		if section, ok := p.matchSectionHeader(line); ok {
			flush()
			current = section
			active = true
			nonEmptyIdx++
			continue
		}

		switch {
		case active:
			accum = append(accum, line)
		case nonEmptyIdx > 0 && nonEmptyIdx < p.h.TitleScanLines &&
			resume.Title == "" && utf8.RuneCountInString(line) < p.h.TitleMaxLen:
			resume.Title = line
		}
		nonEmptyIdx++
	}
	flush()

	resume.Normalize()
	return resume
}

// matchSectionHeader tests a line against the keyword table using
// case-insensitive exact-or-prefix comparison.
func (p *Parser) matchSectionHeader(line string) (Section, bool) {
	lower := strings.ToLower(line)
	for _, section := range sectionScanOrder {
		for _, keyword := range p.h.SectionKeywords[section] {
			if lower == keyword || strings.HasPrefix(lower, keyword) {
				return section, true
			}
		}
	}
	return "", false
}

func (p *Parser) applySection(resume *model.ParsedResume, section Section, content string) {
	switch section {
	case SectionSummary:
		resume.Summary = ExtractSummary(content)
	case SectionSkills:
		resume.Skills = ExtractSkills(content)
	case SectionExperience:
		resume.Experience = ExtractExperience(content)
	case SectionEducation:
		resume.Education = ExtractEducation(content)
	}
}
