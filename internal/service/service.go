package service

import (
	"context"
	"time"
)

// Cache keys of the cached listings.
const (
	usersListKey = "users:list"
	postsListKey = "posts:list"
)

// Cache is the subset of cache.Client the services use.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string) error
}

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, interface{}) bool         { return false }
func (noopCache) SetJSON(context.Context, string, interface{}, time.Duration) {}
func (noopCache) Delete(context.Context, ...string) error                   { return nil }

func orNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
