package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
	log *zap.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	FullName     string `json:"full_name"`
	ProfilePhoto string `json:"profile_photo"`
}

// UpdateUserRequest represents a profile update request.
type UpdateUserRequest struct {
	Username     string `json:"username" validate:"required"`
	FullName     string `json:"full_name"`
	ProfilePhoto string `json:"profile_photo"`
}

// ListUsers godoc
// @Summary List users
// @Description Returns every user without credentials, newest first.
// @Tags users
// @Produce json
// @Success 200 {object} errors.Response{data=[]model.UserSummary}
// @Failure 500 {object} errors.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if len(users) == 0 {
		return c.JSON(http.StatusOK, apperrors.Response{Message: "No users"})
	}
	return c.JSON(http.StatusOK, apperrors.Response{
		Message: fmt.Sprintf("%d users found", len(users)),
		Data:    users,
	})
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} errors.Response{data=model.UserSummary}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req, apperrors.ErrMissingCredentials); err != nil {
		return respondError(c, h.log, err)
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.CreateUserInput{
		Username:     req.Username,
		Password:     req.Password,
		FullName:     req.FullName,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, apperrors.Response{
		Message: fmt.Sprintf("User %s created successfully", user.Username),
		Data:    user.Summary(),
	})
}

// UpdateUser godoc
// @Summary Update profile
// @Description Sets full_name and/or profile_photo. Username and password cannot change.
// @Tags users
// @Accept json
// @Produce json
// @Param user body UpdateUserRequest true "Profile fields"
// @Success 200 {object} errors.Response{data=model.UserSummary}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /users [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req, apperrors.ErrMissingUsername); err != nil {
		return respondError(c, h.log, err)
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), service.UpdateUserInput{
		Username:     req.Username,
		FullName:     req.FullName,
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, apperrors.Response{
		Message: "User updated successfully",
		Data:    user.Summary(),
	})
}

