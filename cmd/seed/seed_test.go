package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/model"
	"feedsvc/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, in service.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, in service.UpdateUserInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

type mockPostService struct {
	mock.Mock
}

func (m *mockPostService) CreatePost(ctx context.Context, in service.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `{
		"users": [{"username": "alice", "password": "pw", "full_name": "Alice"}],
		"posts": [{"username": "alice", "postImage": "a.png", "caption": "hi", "likes": 2, "timestamp": "2024-01-01T00:00:00Z"}]
	}`)

	fx, err := loadFixture(path)
	require.NoError(t, err)
	require.Len(t, fx.Users, 1)
	require.Len(t, fx.Posts, 1)
	assert.Equal(t, "Alice", fx.Users[0].FullName)
	require.NotNil(t, fx.Posts[0].Likes)
	assert.Equal(t, 2, *fx.Posts[0].Likes)

	_, err = loadFixture(writeFixture(t, `{"users": [`))
	assert.ErrorContains(t, err, "parse fixture")

	_, err = loadFixture(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read fixture")
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	fx := &fixture{
		Users: []fixtureUser{
			{Username: "alice", Password: "pw"},
			{Username: "bob", Password: "pw"},
		},
		Posts: []fixturePost{
			{Username: "alice", PostImage: "a.png", Caption: "first"},
		},
	}

	users := new(mockUserService)
	posts := new(mockPostService)
	users.On("CreateUser", ctx, service.CreateUserInput{Username: "alice", Password: "pw"}).
		Return(nil, apperrors.ErrUserExists)
	users.On("CreateUser", ctx, service.CreateUserInput{Username: "bob", Password: "pw"}).
		Return(&model.User{ID: "2", Username: "bob"}, nil)
	posts.On("CreatePost", ctx, service.CreatePostInput{Username: "alice", PostImage: "a.png", Caption: "first"}).
		Return(&model.Post{ID: "p1"}, nil)

	res, err := seed(ctx, fx, users, posts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, seedResult{UsersCreated: 1, UsersSkipped: 1, PostsCreated: 1}, res)
	users.AssertExpectations(t)
	posts.AssertExpectations(t)
}

func TestSeed_StopsOnFailure(t *testing.T) {
	ctx := context.Background()
	fx := &fixture{
		Users: []fixtureUser{{Username: "alice", Password: "pw"}},
		Posts: []fixturePost{{Username: "alice", PostImage: "a.png", Caption: "first"}},
	}

	users := new(mockUserService)
	posts := new(mockPostService)
	users.On("CreateUser", ctx, mock.Anything).Return(nil, apperrors.Storage("create user", errors.New("boom")))

	res, err := seed(ctx, fx, users, posts, zap.NewNop())
	assert.ErrorContains(t, err, `create user "alice"`)
	assert.Zero(t, res.PostsCreated)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}
