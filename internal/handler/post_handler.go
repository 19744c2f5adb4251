package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/service"
)

// PostHandler handles feed endpoints.
type PostHandler struct {
	postService service.PostService
	log         *zap.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

// CreatePostRequest represents a new post.
type CreatePostRequest struct {
	Username  string `json:"username" validate:"required"`
	PostImage string `json:"postImage" validate:"required"`
	Caption   string `json:"caption" validate:"required"`
	Likes     *int   `json:"likes"`
	Timestamp string `json:"timestamp"`
}

// PostCreatedResponse is the minimal confirmation of a new post.
type PostCreatedResponse struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// ListPosts godoc
// @Summary List posts
// @Description Returns every post, newest timestamp first.
// @Tags posts
// @Produce json
// @Success 200 {object} errors.Response{data=[]model.Post}
// @Failure 500 {object} errors.Response
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if len(posts) == 0 {
		return c.JSON(http.StatusOK, apperrors.Response{Message: "No posts"})
	}
	return c.JSON(http.StatusOK, apperrors.Response{
		Message: fmt.Sprintf("%d posts found", len(posts)),
		Data:    posts,
	})
}

// CreatePost godoc
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 200 {object} errors.Response{data=PostCreatedResponse}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := bindAndValidate(c, &req, apperrors.ErrMissingPostFields); err != nil {
		return respondError(c, h.log, err)
	}

	post, err := h.postService.CreatePost(c.Request().Context(), service.CreatePostInput{
		Username:  req.Username,
		PostImage: req.PostImage,
		Caption:   req.Caption,
		Likes:     req.Likes,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, apperrors.Response{
		Message: "Post created successfully",
		Data:    PostCreatedResponse{Username: post.Username, Timestamp: post.Timestamp},
	})
}
