package exports

import "context"

// Repo defines persistence operations for exports.
type Repo interface {
	Create(ctx context.Context, e Export) error
	GetByID(ctx context.Context, userID, exportID string) (Export, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error)
}
