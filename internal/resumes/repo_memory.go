package resumes

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-optimizer/resume/model"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Resume // userId -> resumes
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Resume),
	}
}

// Create stores a resume for a user.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[res.UserID] = append(r.data[res.UserID], res)
	return nil
}

// GetByID returns a resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.data[userID] {
		if res.ID == resumeID {
			return res, nil
		}
	}
	return Resume{}, ErrNotFound
}

// GetCurrentByUser returns the most recently uploaded resume for a user.
func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.data[userID]
	if len(list) == 0 {
		return Resume{}, ErrNotFound
	}
	return list[len(list)-1], nil
}

// ListByUser returns resumes for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
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
	userResumes := r.data[userID]
	r.mu.RUnlock()

	if len(userResumes) == 0 || offset >= len(userResumes) {
		return []Resume{}, nil
	}

	// Insertion order is oldest-first; reverse before the stable sort so
	// equal timestamps still come back newest-first.
	list := make([]Resume, 0, len(userResumes))
	for i := len(userResumes) - 1; i >= 0; i-- {
		list = append(list, userResumes[i])
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return list[offset:end], nil
}

// UpdateParsed replaces the structured data stored for a resume.
func (r *MemoryRepo) UpdateParsed(ctx context.Context, userID, resumeID string, parsed model.ParsedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[userID]
	for i := range list {
		if list[i].ID == resumeID {
			list[i].Parsed = parsed
			list[i].ParseStatus = StatusParsed
			list[i].UpdatedAt = time.Now().UTC()
			r.data[userID] = list
			return nil
		}
	}
	return ErrNotFound
}

// UpdateOptimized attaches an optimized content version to a resume.
func (r *MemoryRepo) UpdateOptimized(ctx context.Context, userID, resumeID string, optimized model.ParsedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[userID]
	for i := range list {
		if list[i].ID == resumeID {
			now := time.Now().UTC()
			list[i].Optimized = &optimized
			list[i].OptimizedAt = &now
			list[i].UpdatedAt = now
			r.data[userID] = list
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
