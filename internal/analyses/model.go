package analyses

import "time"

// Analysis statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis represents a resume analysis job.
type Analysis struct {
	ID             string         `json:"id"`
	ResumeID       string         `json:"resumeId"`
	UserID         string         `json:"userId"`
	Mode           AnalysisMode   `json:"mode"`
	JobDescription string         `json:"jobDescription"`
	Provider       string         `json:"provider"`
	Model          string         `json:"model"`
	Status         string         `json:"status"`
	Result         map[string]any `json:"result,omitempty"`
	ErrorMessage   *string        `json:"errorMessage,omitempty"`
	ErrorCode      string         `json:"errorCode,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	StartedAt      *time.Time     `json:"startedAt,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
