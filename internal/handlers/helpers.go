package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/middleware"
	"tasktrack/internal/models"
)

func respondError(c *gin.Context, status int, message string, details any) {
	c.JSON(status, models.ErrorResponse{
		Message:    message,
		Details:    details,
		TraceID:    c.GetString(middleware.TraceIDKey),
		StatusCode: status,
	})
}

// asValidationError unwraps a *models.ValidationError if err carries one.
func asValidationError(err error) (*models.ValidationError, bool) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
