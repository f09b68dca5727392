package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
	"github.com/yigit/sharesuki/internal/pkg/logger"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

// --- Central Error Handling ---

// HandleAPIError maps service errors onto HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var customErr *apperrors.CustomError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
				WithDetails(validationErr.Details()),
		))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error()),
		))
	case errors.Is(err, apperrors.ErrBadRequest):
		message := "Bad request"
		if errors.As(err, &customErr) {
			message = customErr.Error()
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message),
		))
	case errors.Is(err, apperrors.ErrSkillRecordNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Skill record not found"),
		))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		))
	case errors.Is(err, taskqueue.ErrQueueFull), errors.Is(err, taskqueue.ErrQueueClosed):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Background queue unavailable")
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeQueueUnavailable, "Background queue unavailable, try again later").
				WithSeverity(dto.ErrorSeverityWarning),
		))
	case errors.Is(err, apperrors.ErrStoreFailure):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Store failure")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error"),
		))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}
