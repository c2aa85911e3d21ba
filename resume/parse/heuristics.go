package parse

import "regexp"

// Section identifies a recognized resume section.
type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionSummary    Section = "summary"
)

// sectionScanOrder fixes the order headers are tested in, so a line matching
// keywords of two sections resolves the same way every run.
var sectionScanOrder = []Section{SectionExperience, SectionEducation, SectionSkills, SectionSummary}

// Heuristics bundles the fragile pattern-based rules used by the parser.
// Each rule is an independently testable value so a future replacement (for
// example a trained extractor) swaps in without touching the segmentation
// control flow.
type Heuristics struct {
	// Email matches the first email-like token anywhere in the document.
	Email *regexp.Regexp
	// Phone matches the first phone-like token: optional country code,
	// optional parentheses, dot/dash/space separators, 10 digits.
	Phone *regexp.Regexp
	// SectionKeywords maps each section to the header keywords that
	// introduce it. Matching is case-insensitive, exact or prefix.
	SectionKeywords map[Section][]string
	// TitleMaxLen is the longest line still considered a title candidate.
	TitleMaxLen int
	// TitleScanLines is how many leading lines are scanned for a title.
	TitleScanLines int
}

// DefaultHeuristics returns the production rule set.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Email: regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`),
		Phone: regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		SectionKeywords: map[Section][]string{
			SectionExperience: {"experience", "work history", "employment", "professional experience"},
			SectionEducation:  {"education", "academic", "qualifications"},
			SectionSkills:     {"skills", "technical skills", "core competencies", "technologies"},
			SectionSummary:    {"summary", "profile", "objective", "about"},
		},
		TitleMaxLen:    50,
		TitleScanLines: 5,
	}
}
