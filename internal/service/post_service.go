package service

import (
	"context"
	"errors"
	"time"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/model"
	"feedsvc/internal/repository"
)

// CreatePostInput is a new feed entry. Timestamp, when set, is RFC 3339.
type CreatePostInput struct {
	Username  string
	PostImage string
	Caption   string
	Likes     *int
	Timestamp string
}

// PostService handles feed operations.
type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
}

type postService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, cache Cache, cacheTTL time.Duration) PostService {
	return &postService{
		posts:    posts,
		users:    users,
		cache:    orNoop(cache),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// CreatePost stores a post for an existing user.
func (s *postService) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if in.Username == "" || in.PostImage == "" || in.Caption == "" {
		return nil, apperrors.ErrMissingPostFields
	}

	likes := 0
	if in.Likes != nil {
		if *in.Likes < 0 {
			return nil, apperrors.Validation("Likes must not be negative.")
		}
		likes = *in.Likes
	}

	ts := s.now().UTC()
	if in.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, in.Timestamp)
		if err != nil {
			return nil, apperrors.Validation("Timestamp must be an RFC 3339 date-time.")
		}
		ts = parsed.UTC()
	}

	username := NormalizeUsername(in.Username)
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Storage("find post author", err)
	}

	post := &model.Post{
		Username:  username,
		PostImage: in.PostImage,
		Caption:   in.Caption,
		Likes:     likes,
		Timestamp: ts,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.StorageWithMessage("Failed to create post.", "create post", err)
	}

	_ = s.cache.Delete(ctx, postsListKey)
	return post, nil
}

// ListPosts returns every post, newest timestamp first.
// Like ListUsers, a listing racing a CreatePost may cache the list without
// the new post until the cache TTL expires.
func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	var cached []model.Post
	if s.cache.GetJSON(ctx, postsListKey, &cached) {
		return cached, nil
	}

	posts, err := s.posts.ListByTimestampDesc(ctx)
	if err != nil {
		return nil, apperrors.Storage("list posts", err)
	}
	s.cache.SetJSON(ctx, postsListKey, posts, s.cacheTTL)
	return posts, nil
}
