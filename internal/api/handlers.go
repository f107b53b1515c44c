package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/rslimiter"
	"github.com/shivam1584818/fb-group-finder-backend/internal/scanner"
)

// handleScan creates a handler for POST /scan
func handleScan(s Scanner, guard AdmissionGuard, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			status, message := bindErrorResponse(err)
			c.JSON(status, ErrorResponse{Message: message})
			return
		}

		if guard != nil {
			if err := guard.Admit(); err != nil {
				c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: err.Error()})
				return
			}
		}

		result, err := s.Scan(c.Request.Context(), req.PostURL)
		if err != nil {
			status := statusForError(err)
			if status >= http.StatusInternalServerError {
				logger.Error().Err(err).Str("post_url", req.PostURL).Msg("Scan failed")
			}
			c.JSON(status, ErrorResponse{Message: err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleHealth reports liveness and current resource usage
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"resources": rslimiter.GetResourceUsage(),
	})
}

func bindErrorResponse(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, "request body too large"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, "postUrl required"
	}

	return http.StatusBadRequest, "invalid request body"
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, scanner.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
