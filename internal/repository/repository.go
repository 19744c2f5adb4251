package repository

import (
	"context"
	"errors"

	"feedsvc/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// UserRepository defines user persistence operations.
//
// Username uniqueness is not enforced here; callers check before Create.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
	ListByCreatedDesc(ctx context.Context) ([]model.User, error)
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListByTimestampDesc(ctx context.Context) ([]model.Post, error)
}
