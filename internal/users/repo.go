package users

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing user row.
var ErrNotFound = errors.New("user not found")

// Repo persists user profiles.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
}
