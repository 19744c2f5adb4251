package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"feedsvc/internal/model"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a GORM-backed post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post record.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// ListByTimestampDesc returns every post, newest first.
func (r *postRepository) ListByTimestampDesc(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
