package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "feedsvc/internal/errors"
	"feedsvc/internal/logging"
)

// respondError writes err as the response envelope. Causes of server-side
// failures go to the log only.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context(), log).Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToResponse())
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// Any failure is reported as invalid.
func bindAndValidate(c echo.Context, req interface{}, invalid error) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("Invalid request body.")
	}
	if err := c.Validate(req); err != nil {
		return invalid
	}
	return nil
}
