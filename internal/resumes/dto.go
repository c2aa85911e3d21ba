package resumes

import (
	"time"

	"resume-optimizer/resume/model"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID    string              `json:"resumeId"`
	FileName    string              `json:"fileName"`
	MimeType    string              `json:"mimeType"`
	SizeBytes   int64               `json:"sizeBytes"`
	ParseStatus string              `json:"parseStatus"`
	UploadedAt  time.Time           `json:"uploadedAt"`
	Parsed      *model.ParsedResume `json:"parsed,omitempty"`
	Optimized   *model.ParsedResume `json:"optimized,omitempty"`
	OptimizedAt *time.Time          `json:"optimizedAt,omitempty"`
}

func toResponse(res Resume, includeParsed bool) ResumeResponse {
	out := ResumeResponse{
		ResumeID:    res.ID,
		FileName:    res.FileName,
		MimeType:    res.MimeType,
		SizeBytes:   res.SizeBytes,
		ParseStatus: res.ParseStatus,
		UploadedAt:  res.CreatedAt,
	}
	if includeParsed {
		parsed := res.Parsed
		parsed.Normalize()
		out.Parsed = &parsed
		if res.Optimized != nil {
			opt := *res.Optimized
			opt.Normalize()
			out.Optimized = &opt
			out.OptimizedAt = res.OptimizedAt
		}
	}
	return out
}
