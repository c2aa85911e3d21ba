package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-optimizer/resume/model"
)

const (
	minSkillLen = 2
	maxSkillLen = 50
)

var (
	skillSplitPattern = regexp.MustCompile(`[,•\-\n]`)
	paragraphPattern  = regexp.MustCompile(`\n{2,}`)
)

// ExtractSummary returns the trimmed verbatim text block.
func ExtractSummary(content string) string {
	return strings.TrimSpace(content)
}

// ExtractSkills splits the block on commas, bullet characters, hyphens, and
// newlines; trims tokens; drops tokens outside [2, 50) runes; and removes
// duplicates preserving first-seen order. Deduplication is case-sensitive:
// "Python" and "python" are distinct entries.
func ExtractSkills(content string) []string {
	tokens := skillSplitPattern.Split(content, -1)
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		n := utf8.RuneCountInString(token)
		if n < minSkillLen || n >= maxSkillLen {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// ExtractExperience splits the block into blank-line-delimited paragraphs.
// Each paragraph with at least two non-empty lines becomes an entry: line 1
// is the title, line 2 the company, and any remaining lines the description.
func ExtractExperience(content string) []model.Experience {
	paragraphs := splitParagraphs(content)
	out := make([]model.Experience, 0, len(paragraphs))
	for _, lines := range paragraphs {
		if len(lines) < 2 {
			continue
		}
		out = append(out, model.Experience{
			Title:       lines[0],
			Company:     lines[1],
			Description: strings.Join(lines[2:], "\n"),
		})
	}
	return out
}

// ExtractEducation splits the block the same way; each paragraph with at
// least one line becomes an entry with the first line as the degree.
func ExtractEducation(content string) []model.Education {
	paragraphs := splitParagraphs(content)
	out := make([]model.Education, 0, len(paragraphs))
	for _, lines := range paragraphs {
		if len(lines) < 1 {
			continue
		}
		out = append(out, model.Education{
			Degree:  lines[0],
			Details: strings.Join(lines[1:], "\n"),
		})
	}
	return out
}

func splitParagraphs(content string) [][]string {
	blocks := paragraphPattern.Split(content, -1)
	out := make([][]string, 0, len(blocks))
	for _, block := range blocks {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}
