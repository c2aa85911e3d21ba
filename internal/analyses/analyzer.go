package analyses

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resume-optimizer/resume/model"
)

// Analyzer produces an analysis result for a parsed resume, optionally
// scored against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resume model.ParsedResume, jobDescription string) (map[string]any, error)
}

var wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z+#.]+`)

var stopwords = map[string]struct{}{
	"in": {}, "on": {}, "at": {}, "to": {}, "of": {}, "an": {}, "as": {},
	"or": {}, "is": {}, "be": {}, "we": {}, "us": {}, "it": {}, "if": {},
	"and": {}, "the": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"are": {}, "our": {}, "will": {}, "have": {}, "has": {}, "this": {},
	"that": {}, "who": {}, "can": {}, "not": {}, "all": {}, "but": {},
	"from": {}, "their": {}, "they": {}, "about": {}, "work": {},
	"working": {}, "experience": {}, "years": {}, "team": {}, "role": {},
	"ability": {}, "strong": {}, "skills": {}, "including": {},
	"required": {}, "preferred": {}, "plus": {}, "must": {}, "should": {},
}

// KeywordAnalyzer scores a resume with deterministic keyword heuristics.
// It is the fallback when no language-model provider is configured, and
// the reference behavior the LLM path is validated against.
type KeywordAnalyzer struct{}

func (KeywordAnalyzer) Analyze(ctx context.Context, resume model.ParsedResume, jobDescription string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resume.Normalize()

	if ModeFor(jobDescription) == ModeGeneral {
		return generalReview(resume), nil
	}
	return jobMatchReview(resume, jobDescription), nil
}

func generalReview(resume model.ParsedResume) map[string]any {
	score := 0
	suggestions := []string{}

	if resume.Summary != "" {
		score += 20
	} else {
		suggestions = append(suggestions, "Add a short professional summary near the top.")
	}
	if len(resume.Experience) > 0 {
		score += 30
	} else {
		suggestions = append(suggestions, "Add at least one experience entry with measurable results.")
	}
	if len(resume.Skills) >= 5 {
		score += 20
	} else {
		suggestions = append(suggestions, "List more skills; five or more helps keyword screening.")
	}
	if len(resume.Education) > 0 {
		score += 15
	} else {
		suggestions = append(suggestions, "Include your education history.")
	}
	if resume.Email != "" && resume.Phone != "" {
		score += 15
	} else {
		suggestions = append(suggestions, "Make sure both an email address and phone number are present.")
	}

	for _, exp := range resume.Experience {
		if len(exp.Bullets) == 0 && exp.Description == "" {
			suggestions = append(suggestions, fmt.Sprintf("Describe what you did at %s.", firstNonEmpty(exp.Company, exp.Title, "each role")))
			break
		}
	}

	return map[string]any{
		"mode":          string(ModeGeneral),
		"matchScore":    score,
		"matchedSkills": resume.Skills,
		"missingSkills": []string{},
		"suggestions":   suggestions,
		"summary":       fmt.Sprintf("Resume completeness score %d of 100.", score),
	}
}

func jobMatchReview(resume model.ParsedResume, jobDescription string) map[string]any {
	jdTokens := keywordSet(jobDescription)
	resumeText := strings.ToLower(resumeFullText(resume))

	matched := []string{}
	for _, skill := range resume.Skills {
		if _, ok := jdTokens[strings.ToLower(skill)]; ok {
			matched = append(matched, skill)
		}
	}

	missing := []string{}
	for token := range jdTokens {
		if !strings.Contains(resumeText, token) {
			missing = append(missing, token)
		}
	}
	sort.Strings(missing)
	if len(missing) > 10 {
		missing = missing[:10]
	}

	total := len(jdTokens)
	covered := total - countMissing(jdTokens, resumeText)
	score := 0
	if total > 0 {
		score = covered * 100 / total
	}

	suggestions := []string{}
	if len(missing) > 0 {
		suggestions = append(suggestions, "Work these terms from the job description into your resume where they are true: "+strings.Join(missing, ", ")+".")
	}
	if resume.Summary == "" {
		suggestions = append(suggestions, "Add a summary that mirrors the language of the role.")
	}
	if len(matched) > 0 {
		suggestions = append(suggestions, "Move your strongest matching skills ("+strings.Join(matched, ", ")+") higher on the resume.")
	}

	return map[string]any{
		"mode":          string(ModeJobMatch),
		"matchScore":    score,
		"matchedSkills": matched,
		"missingSkills": missing,
		"suggestions":   suggestions,
		"summary":       fmt.Sprintf("Resume covers %d of %d job description keywords.", covered, total),
	}
}

func keywordSet(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(text, -1) {
		lower := strings.ToLower(word)
		if _, ok := stopwords[lower]; ok {
			continue
		}
		out[lower] = struct{}{}
	}
	return out
}

func countMissing(tokens map[string]struct{}, resumeText string) int {
	missing := 0
	for token := range tokens {
		if !strings.Contains(resumeText, token) {
			missing++
		}
	}
	return missing
}

func resumeFullText(resume model.ParsedResume) string {
	var b strings.Builder
	b.WriteString(resume.Summary)
	b.WriteString("\n")
	b.WriteString(resume.Title)
	b.WriteString("\n")
	for _, s := range resume.Skills {
		b.WriteString(s)
		b.WriteString("\n")
	}
	for _, exp := range resume.Experience {
		b.WriteString(exp.Title)
		b.WriteString("\n")
		b.WriteString(exp.Company)
		b.WriteString("\n")
		b.WriteString(exp.Description)
		b.WriteString("\n")
		for _, bullet := range exp.Bullets {
			b.WriteString(bullet)
			b.WriteString("\n")
		}
	}
	for _, edu := range resume.Education {
		b.WriteString(edu.Degree)
		b.WriteString("\n")
		b.WriteString(edu.School)
		b.WriteString("\n")
	}
	for _, cert := range resume.Certifications {
		b.WriteString(cert)
		b.WriteString("\n")
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
