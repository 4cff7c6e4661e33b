package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/models"
)

// Recovery converts panics into the uniform error payload. The original
// message survives only in the details field.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		traceID := c.GetString(TraceIDKey)
		log.Printf("[recover][err] trace=%s panic: %v", traceID, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Message:    "An unexpected error occurred.",
			Details:    fmt.Sprint(recovered),
			TraceID:    traceID,
			StatusCode: http.StatusInternalServerError,
		})
	})
}
