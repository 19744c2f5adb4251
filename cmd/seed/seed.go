package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/service"
)

// fixtureUser mirrors the POST /users body.
type fixtureUser struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	ProfilePhoto string `json:"profile_photo"`
}

// fixturePost mirrors the POST /posts body.
type fixturePost struct {
	Username  string `json:"username"`
	PostImage string `json:"postImage"`
	Caption   string `json:"caption"`
	Likes     *int   `json:"likes"`
	Timestamp string `json:"timestamp"`
}

type fixture struct {
	Users []fixtureUser `json:"users"`
	Posts []fixturePost `json:"posts"`
}

type seedResult struct {
	UsersCreated int
	UsersSkipped int
	PostsCreated int
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fx, nil
}

// seed creates fixture users then posts. Existing users are skipped so the
// command can be re-run; any other failure stops the run.
func seed(ctx context.Context, fx *fixture, users service.UserService, posts service.PostService, log *zap.Logger) (seedResult, error) {
	var res seedResult

	for _, u := range fx.Users {
		_, err := users.CreateUser(ctx, service.CreateUserInput{
			Username:     u.Username,
			Password:     u.Password,
			FullName:     u.FullName,
			ProfilePhoto: u.ProfilePhoto,
		})
		switch {
		case errors.Is(err, apperrors.ErrUserExists):
			log.Debug("user exists, skipping", zap.String("username", u.Username))
			res.UsersSkipped++
		case err != nil:
			return res, fmt.Errorf("create user %q: %w", u.Username, err)
		default:
			res.UsersCreated++
		}
	}

	for i, p := range fx.Posts {
		_, err := posts.CreatePost(ctx, service.CreatePostInput{
			Username:  p.Username,
			PostImage: p.PostImage,
			Caption:   p.Caption,
			Likes:     p.Likes,
			Timestamp: p.Timestamp,
		})
		if err != nil {
			return res, fmt.Errorf("create post %d by %q: %w", i, p.Username, err)
		}
		res.PostsCreated++
	}

	return res, nil
}
