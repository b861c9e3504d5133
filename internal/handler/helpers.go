package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/middleware"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
	"github.com/stemsi/lms-backend/internal/service"
)

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// parseOptionalQueryID reads an optional positive integer query parameter.
func parseOptionalQueryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			name: name + " must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// requireSelf answers 403 unless the caller may act for owner.
func requireSelf(c *gin.Context, owner model.Recipient) bool {
	if !middleware.CanActFor(middleware.GetClaims(c), owner) {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return false
	}
	return true
}

// failFromService maps a service error onto the API error taxonomy.
func failFromService(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrTestNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		response.FailWithFields(c, http.StatusNotFound, response.ErrNotFound, map[string]string{
			"resource": err.Error(),
		})
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrInvalidProgress):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidProgress, map[string]string{
			"progress": err.Error(),
		})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
