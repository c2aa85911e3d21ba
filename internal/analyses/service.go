package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/queue"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

// Service contains business logic for analyses.
type Service struct {
	Repo        Repo
	ResumesRepo resumes.Repo
	Analyzer    Analyzer
	Queue       queue.Client
	Provider    string
	Model       string
}

// Create records a new analysis and kicks off asynchronous completion,
// through the job queue when one is configured and in-process otherwise.
func (s *Service) Create(ctx context.Context, userID, resumeID, jobDescription string) (Analysis, error) {
	if userID == "" {
		return Analysis{}, ErrInvalidInput
	}

	res, err := s.lookupResume(ctx, userID, resumeID)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{
		ID:             uuid.NewString(),
		ResumeID:       res.ID,
		UserID:         userID,
		Mode:           ModeFor(jobDescription),
		JobDescription: jobDescription,
		Provider:       normalizeProvider(s.Provider),
		Model:          s.Model,
		Status:         StatusQueued,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			AnalysisID: analysis.ID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err == nil {
			return analysis, nil
		} else if !errors.Is(err, context.Canceled) {
			// Fall through to in-process completion so the analysis does
			// not strand in queued.
			telemetry.Error("analysis.enqueue_failed", map[string]any{
				"analysis_id": analysis.ID,
				"error":       sanitizeError(err),
			})
		}
	}

	go s.processAsync(backgroundWithRequestID(ctx), analysis.ID)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns analyses for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Process runs a queued analysis to completion. Queue consumers call this
// directly; HTTP-created analyses without a queue run it in a goroutine.
func (s *Service) Process(ctx context.Context, analysisID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, analysisID, StatusProcessing, nil, nil, "", &startedAt, nil); err != nil {
		return s.failAnalysis(ctx, analysisID, "", "", fmt.Errorf("set processing failed: %w", err), &startedAt)
	}

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return s.failAnalysis(ctx, analysisID, "", "", fmt.Errorf("analysis lookup: %w", err), &startedAt)
	}

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"resume_id":         analysis.ResumeID,
		"analysis_id":       analysis.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	res, err := s.ResumesRepo.GetByID(ctx, analysis.UserID, analysis.ResumeID)
	if err != nil {
		return s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.ResumeID, fmt.Errorf("resume lookup: %w", err), &startedAt)
	}

	analyzer := newRetryingAnalyzer(s.Analyzer, analysis.ID, requestIDFromContext(ctx))
	if analyzer == nil {
		analyzer = KeywordAnalyzer{}
	}

	result, err := analyzer.Analyze(ctx, res.Parsed, analysis.JobDescription)
	if err != nil {
		return s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.ResumeID, err, &startedAt)
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, analysisID, StatusCompleted, result, nil, "", nil, &completedAt); err != nil {
		return s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.ResumeID, fmt.Errorf("store result: %w", err), &startedAt)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(completedAt.Sub(startedAt).Milliseconds()))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"resume_id":         analysis.ResumeID,
		"analysis_id":       analysis.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"duration_ms":       completedAt.Sub(startedAt).Milliseconds(),
	})
	return nil
}

func (s *Service) processAsync(ctx context.Context, analysisID string) {
	defer func() {
		if r := recover(); r != nil {
			_ = s.failAnalysis(ctx, analysisID, "", "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.Process(ctx, analysisID)
}

func (s *Service) failAnalysis(ctx context.Context, analysisID, userID, resumeID string, cause error, startedAt *time.Time) error {
	code := classifyError(cause)
	msg := sanitizeError(cause)
	completedAt := time.Now().UTC()

	if err := s.Repo.UpdateStatusResultAndError(ctx, analysisID, StatusFailed, nil, &msg, code, startedAt, &completedAt); err != nil && !errors.Is(err, ErrNotFound) {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysisID,
			"error":       sanitizeError(err),
		})
	}

	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"resume_id":         resumeID,
		"analysis_id":       analysisID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"error":             msg,
	})
	return cause
}

func (s *Service) lookupResume(ctx context.Context, userID, resumeID string) (resumes.Resume, error) {
	var res resumes.Resume
	var err error
	if resumeID == "" {
		res, err = s.ResumesRepo.GetCurrentByUser(ctx, userID)
	} else {
		res, err = s.ResumesRepo.GetByID(ctx, userID, resumeID)
	}
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return resumes.Resume{}, ErrNoResume
		}
		return resumes.Resume{}, err
	}
	return res, nil
}

func classifyError(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout
	}
	if errors.Is(err, ErrInvalidLLMOutput) {
		return ErrorCodeLLMOutput
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return ErrorCodeLLMTimeout
	}
	return ErrorCodeInternal
}

func normalizeProvider(provider string) string {
	if strings.TrimSpace(provider) == "" {
		return "heuristic"
	}
	return provider
}
