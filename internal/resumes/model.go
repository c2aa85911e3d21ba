package resumes

import (
	"time"

	"resume-optimizer/resume/model"
)

// Parse statuses recorded on a resume.
const (
	StatusParsed = "parsed"
	StatusFailed = "failed"
)

// Resume is an uploaded resume file plus the structured data parsed from it.
type Resume struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	ParseStatus      string
	Parsed           model.ParsedResume
	Optimized        *model.ParsedResume
	OptimizedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Content returns the data exports should render: the latest optimized
// version when one exists, otherwise the parsed original.
func (r Resume) Content() model.ParsedResume {
	if r.Optimized != nil {
		return *r.Optimized
	}
	return r.Parsed
}
