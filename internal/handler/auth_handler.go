package handler

import (
	"net/http"

	"status_board/internal/model"
	"status_board/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}
