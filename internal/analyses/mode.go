package analyses

import "strings"

// AnalysisMode defines the supported analysis modes.
type AnalysisMode string

const (
	// ModeGeneral reviews the resume on its own.
	ModeGeneral AnalysisMode = "GENERAL"
	// ModeJobMatch compares the resume against a job description.
	ModeJobMatch AnalysisMode = "JOB_MATCH"
)

// ModeFor picks the mode implied by the request: a job description means a
// match analysis, otherwise a general review.
func ModeFor(jobDescription string) AnalysisMode {
	if strings.TrimSpace(jobDescription) == "" {
		return ModeGeneral
	}
	return ModeJobMatch
}
