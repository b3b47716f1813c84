package handler

import (
	"log/slog"
	"net/http"

	"status_board/internal/middleware"
	"status_board/internal/model"
	"status_board/internal/service"

	"github.com/gin-gonic/gin"
)

// StatusHandler serves the status board endpoints
type StatusHandler struct {
	service service.StatusService
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(s service.StatusService) *StatusHandler {
	return &StatusHandler{service: s}
}

// GetOptions returns the allowed status values
func (h *StatusHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": h.service.Options()})
}

// GetMe returns the caller's username and, when set, their current status
func (h *StatusHandler) GetMe(c *gin.Context) {
	id, err := middleware.GetIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"username": id.Username}
	current, err := h.service.Current(c.Request.Context(), id.UserID)
	if err != nil {
		// the username alone is still a useful answer
		slog.WarnContext(c.Request.Context(), "error getting current status", "user_id", id.UserID, "error", err)
	} else if current != nil {
		resp["status"] = current.Status
		resp["updated_at"] = current.UpdatedAt
	}
	c.JSON(http.StatusOK, resp)
}

// GetRoster returns every user with their latest status
func (h *StatusHandler) GetRoster(c *gin.Context) {
	roster, err := h.service.Roster(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "error getting roster", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statuses"})
		return
	}
	c.JSON(http.StatusOK, roster)
}

// SetStatus updates the caller's status. The target user is always the caller.
func (h *StatusHandler) SetStatus(c *gin.Context) {
	id, err := middleware.GetIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidStatus.Error()})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), id.UserID, req.Status); err != nil {
		respondError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// GetUsers lists every user (id and username)
func (h *StatusHandler) GetUsers(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	}

	type userResponse struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{ID: u.ID, Username: u.Username})
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterStatusRoutes registers status routes; authMW guards everything but the options list
func (h *StatusHandler) RegisterStatusRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/status/options", h.GetOptions)

	protected := rg.Group("")
	protected.Use(authMW)
	{
		protected.GET("/user/me", h.GetMe)
		protected.GET("/status", h.GetRoster)
		protected.PUT("/status", h.SetStatus)
		protected.GET("/users", h.GetUsers)
	}
}
