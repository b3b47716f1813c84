package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"status_board/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes. Unknown errors are logged
// and reported as 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
