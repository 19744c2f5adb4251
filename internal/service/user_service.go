package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"feedsvc/internal/auth"
	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/model"
	"feedsvc/internal/repository"
)

// CreateUserInput is a registration request.
type CreateUserInput struct {
	Username     string
	Password     string
	FullName     string
	ProfilePhoto string
}

// UpdateUserInput is a profile update. Empty optional fields are left unchanged.
type UpdateUserInput struct {
	Username     string
	FullName     string
	ProfilePhoto string
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
}

type userService struct {
	repo     repository.UserRepository
	hasher   PasswordHasher
	cache    Cache
	cacheTTL time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, cache Cache, cacheTTL time.Duration) UserService {
	return &userService{repo: repo, hasher: hasher, cache: orNoop(cache), cacheTTL: cacheTTL}
}

// NormalizeUsername applies the case folding used for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}

// CreateUser registers a user after checking the username is free.
// The check and the insert are not atomic; concurrent registrations of the
// same name can both succeed.
func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}
	username := NormalizeUsername(in.Username)

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Storage("check user existence", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperrors.ErrPasswordTooLong
	}
	if err != nil {
		return nil, apperrors.Storage("hash password", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     in.FullName,
		ProfilePhoto: in.ProfilePhoto,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.Storage("create user", err)
	}

	_ = s.cache.Delete(ctx, usersListKey)
	return user, nil
}

// UpdateUser applies the provided profile fields. Username and password never change here.
func (s *userService) UpdateUser(ctx context.Context, in UpdateUserInput) (*model.User, error) {
	if in.Username == "" {
		return nil, apperrors.ErrMissingUsername
	}

	user, err := s.repo.FindByUsername(ctx, NormalizeUsername(in.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Storage("find user", err)
	}

	var upd model.UserUpdate
	if in.FullName != "" {
		upd.FullName = &in.FullName
	}
	if in.ProfilePhoto != "" {
		upd.ProfilePhoto = &in.ProfilePhoto
	}

	updated, err := s.repo.Update(ctx, user.ID, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Storage("update user", err)
	}

	if !upd.IsEmpty() {
		_ = s.cache.Delete(ctx, usersListKey)
	}
	return updated, nil
}

// ListUsers returns credential-free summaries, newest first.
// A listing that reads the store before a concurrent write invalidates the
// cache can still store its stale result afterwards; that entry lives until
// the cache TTL expires.
func (s *userService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	var cached []model.UserSummary
	if s.cache.GetJSON(ctx, usersListKey, &cached) {
		return cached, nil
	}

	users, err := s.repo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, apperrors.Storage("list users", err)
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	s.cache.SetJSON(ctx, usersListKey, summaries, s.cacheTTL)
	return summaries, nil
}
