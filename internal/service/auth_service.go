package service

import (
	"context"
	"errors"

	"feedsvc/internal/auth"
	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/model"
	"feedsvc/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login verifies credentials and issues a session token. Unknown users and
// wrong passwords yield the same error.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, NormalizeUsername(username))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, apperrors.Storage("find user", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Storage("verify password", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, apperrors.Storage("issue token", err)
	}
	return token, user, nil
}
