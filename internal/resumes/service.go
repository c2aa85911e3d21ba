package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/resume/model"
	"resume-optimizer/resume/parse"
)

// Service contains business logic for resume upload and parsing.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Parser *parse.Parser
}

// NewService constructs a Service with the default parser.
func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, Parser: parse.New()}
}

// Upload stores the file, extracts its text, parses it into structured
// fields and records the resume. The file is rejected before storage when
// its extension is not an accepted resume format.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	if _, err := extract.DetectFormat(fileName); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	res := Resume{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    fileName,
		MimeType:    mimeType,
		SizeBytes:   size,
		StorageKey:  storageKey,
		ParseStatus: StatusParsed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	text, err := extract.ExtractText(ctx, s.Store, storageKey, fileName)
	if err != nil {
		metrics.IncParseFailed()
		telemetry.Error("resume.extract_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
		return Resume{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	extractedAt := time.Now().UTC()
	res.ExtractedTextKey = storageKey + ".extracted.txt"
	res.ExtractedAt = &extractedAt
	res.Parsed = s.Parser.Parse(text)

	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}

	metrics.IncResumesUploaded()
	telemetry.Info("resume.uploaded", map[string]any{
		"user_id":    userID,
		"resume_id":  res.ID,
		"file_name":  fileName,
		"size_bytes": size,
	})
	return res, nil
}

// Current returns the most recently uploaded resume for a user.
func (s *Service) Current(ctx context.Context, userID string) (Resume, error) {
	if userID == "" {
		return Resume{}, errors.New("user id required")
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns a resume by ID for a user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns resumes for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// UpdateParsed replaces the structured data for a resume, typically after
// the user edits fields or applies generated improvements.
func (s *Service) UpdateParsed(ctx context.Context, userID, resumeID string, parsed model.ParsedResume) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	parsed.Normalize()
	if err := s.Repo.UpdateParsed(ctx, userID, resumeID, parsed); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// UpdateOptimized stores an optimized content version for a resume. Exports
// prefer this version over the parsed original.
func (s *Service) UpdateOptimized(ctx context.Context, userID, resumeID string, optimized model.ParsedResume) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	optimized.Normalize()
	if err := s.Repo.UpdateOptimized(ctx, userID, resumeID, optimized); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}
