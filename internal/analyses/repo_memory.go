package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps analyses in process memory. It backs dev mode and tests
// and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Analysis
	byUser map[string][]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Analysis),
		byUser: make(map[string][]string),
	}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	r.byUser[analysis.UserID] = append(r.byUser[analysis.UserID], analysis.ID)
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// UpdateStatus updates the status and result for an existing analysis.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, analysisID, status string, result map[string]any) error {
	return r.UpdateStatusResultAndError(ctx, analysisID, status, result, nil, "", nil, nil)
}

// UpdateStatusResultAndError updates status, result and error fields. When the
// caller does not supply timestamps, startedAt is stamped on the transition to
// processing and completedAt on reaching a terminal state.
func (r *MemoryRepo) UpdateStatusResultAndError(ctx context.Context, analysisID, status string, result map[string]any, errorMessage *string, errorCode string, startedAt, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	analysis.Status = status
	if result != nil {
		analysis.Result = result
	}
	if errorMessage != nil {
		analysis.ErrorMessage = errorMessage
	}
	if errorCode != "" {
		analysis.ErrorCode = errorCode
	}
	switch {
	case startedAt != nil:
		analysis.StartedAt = startedAt
	case status == StatusProcessing && analysis.StartedAt == nil:
		analysis.StartedAt = &now
	}
	switch {
	case completedAt != nil:
		analysis.CompletedAt = completedAt
	case isTerminal(status) && analysis.CompletedAt == nil:
		analysis.CompletedAt = &now
	}
	analysis.UpdatedAt = now

	r.byID[analysisID] = analysis
	return nil
}

func isTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// ListByUser returns a user's analyses, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	list := make([]Analysis, 0, len(ids))
	for _, id := range ids {
		if analysis, ok := r.byID[id]; ok {
			list = append(list, analysis)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if offset >= len(list) {
		return []Analysis{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
