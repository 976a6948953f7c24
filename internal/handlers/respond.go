package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/steamtrack/project-tracking-api/internal/errors"
	"github.com/steamtrack/project-tracking-api/internal/services"
)

const dateFormat = "2006-01-02"

// parseDate parses a YYYY-MM-DD request field. Empty input yields the zero
// time so the services can report the missing-field error themselves.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateFormat, value)
}

// respondServiceError maps service-level errors to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		apierrors.ValidationFailed(c, validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrMeetingNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidJoinKey):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
