package resumes

import (
	"context"

	"resume-optimizer/resume/model"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	GetCurrentByUser(ctx context.Context, userID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	UpdateParsed(ctx context.Context, userID, resumeID string, parsed model.ParsedResume) error
	UpdateOptimized(ctx context.Context, userID, resumeID string, optimized model.ParsedResume) error
}
