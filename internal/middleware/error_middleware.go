package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails([]domain.FieldError(validationErrs))
		if len(validationErrs) > 0 {
			detail.Message = validationErrs[0].Message
			detail.Field = validationErrs[0].Field
		}
		return http.StatusBadRequest, detail
	}

	var mediaErr *domain.MediaError
	if errors.As(err, &mediaErr) {
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, mediaErr.Notice).
			WithField(mediaErr.Field).
			WithDetails(map[string]string{"detected": mediaErr.Detected})
	}

	var customErr *apperrors.CustomError
	message := ""
	field := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
		field = customErr.Field
	}
	withMessage := func(code dto.ErrorCode, fallback string) *dto.ErrorDetail {
		if message == "" {
			message = fallback
		}
		d := dto.NewErrorDetail(code, message)
		if field != "" {
			d.WithField(field)
		}
		if customErr != nil && customErr.Details != nil {
			d.WithDetails(customErr.Details)
		}
		return d
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withMessage(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, withMessage(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, withMessage(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withMessage(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, withMessage(dto.ErrorCodeUploadTooLarge, "Upload too large")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withMessage(dto.ErrorCodeInvalidRequest, "Bad request")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, withMessage(dto.ErrorCodeConflict, "Conflict")
	case errors.Is(err, apperrors.ErrStorageFailed):
		return http.StatusInternalServerError, withMessage(dto.ErrorCodeStorageError, "Failed to store file")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
