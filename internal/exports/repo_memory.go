package exports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores exports in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Export
	byUser map[string][]Export
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Export),
		byUser: make(map[string][]Export),
	}
}

// Create stores the export.
func (r *MemoryRepo) Create(ctx context.Context, e Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[e.ID] = e
	r.byUser[e.UserID] = append(r.byUser[e.UserID], e)
	return nil
}

// GetByID returns an export by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, exportID string) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[exportID]
	if !ok {
		return Export{}, ErrNotFound
	}
	if e.UserID != userID {
		return Export{}, ErrForbidden
	}
	return e, nil
}

// ListByUser returns exports for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
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
	userExports := r.byUser[userID]
	r.mu.RUnlock()

	if len(userExports) == 0 || offset >= len(userExports) {
		return []Export{}, nil
	}

	// Insertion order is oldest-first; reverse before the stable sort so
	// equal timestamps still come back newest-first.
	list := make([]Export, 0, len(userExports))
	for i := len(userExports) - 1; i >= 0; i-- {
		list = append(list, userExports[i])
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

var _ Repo = (*MemoryRepo)(nil)
