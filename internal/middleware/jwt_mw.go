package middleware

import (
	"errors"
	"net/http"
	"strings"

	"status_board/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey     = "authUser"
	AuthUsernameKey = "authUsername"
)

// Identity is the caller resolved from a validated token
type Identity struct {
	UserID   int64
	Username string
}

// JWTAuthMiddleware rejects requests without a bearer token (401) or with a
// token that fails verification or has expired (403). No database lookup is done.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthUsernameKey, claims.Username)

		c.Next()
	}
}

// GetIdentity returns the identity stored by JWTAuthMiddleware
func GetIdentity(c *gin.Context) (Identity, error) {
	userIDVal, exists := c.Get(AuthUserKey)
	if !exists {
		return Identity{}, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return Identity{}, errors.New("invalid user ID type in context")
	}
	username := c.GetString(AuthUsernameKey)
	if username == "" {
		return Identity{}, errors.New("username not found in context")
	}
	return Identity{UserID: userID, Username: username}, nil
}
