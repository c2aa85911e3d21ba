package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-optimizer/internal/llm"
	"resume-optimizer/resume/model"
)

const analyzerSystemPrompt = "You are a resume reviewer. Respond with a single JSON object and nothing else."

const jobMatchPromptTemplate = `Compare the resume below against the job description and respond with JSON:
{"matchScore": <0-100>, "matchedSkills": [...], "missingSkills": [...], "suggestions": [...], "summary": "<one sentence>"}

RESUME:
%s

JOB DESCRIPTION:
%s`

const generalPromptTemplate = `Review the resume below and respond with JSON:
{"matchScore": <0-100 completeness score>, "matchedSkills": [...], "missingSkills": [], "suggestions": [...], "summary": "<one sentence>"}

RESUME:
%s`

// ErrInvalidLLMOutput indicates the provider returned something that could
// not be decoded into an analysis result.
var ErrInvalidLLMOutput = errors.New("invalid llm output")

// LLMAnalyzer asks a chat-completion provider for the analysis.
type LLMAnalyzer struct {
	Client llm.Client
}

func (a LLMAnalyzer) Analyze(ctx context.Context, resume model.ParsedResume, jobDescription string) (map[string]any, error) {
	resumeJSON, err := json.MarshalIndent(resume.Normalize(), "", "  ")
	if err != nil {
		return nil, err
	}

	var prompt string
	if ModeFor(jobDescription) == ModeJobMatch {
		prompt = fmt.Sprintf(jobMatchPromptTemplate, resumeJSON, jobDescription)
	} else {
		prompt = fmt.Sprintf(generalPromptTemplate, resumeJSON)
	}

	raw, err := a.Client.Complete(ctx, analyzerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}
	result["mode"] = string(ModeFor(jobDescription))
	return result, nil
}

// extractJSONObject tolerates providers that wrap the JSON object in prose
// or code fences.
func extractJSONObject(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", errors.New("empty llm response")
	}
	if json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no json object found")
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", errors.New("invalid json object")
	}
	return candidate, nil
}

var _ Analyzer = LLMAnalyzer{}
var _ Analyzer = KeywordAnalyzer{}
