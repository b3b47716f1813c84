// Package router assembles the gin engine: middleware chain and routes.
package router

import (
	"log/slog"

	"status_board/internal/handler"
	"status_board/internal/middleware"
	"status_board/internal/service"
	"status_board/internal/utils"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	AuthService   service.AuthService
	StatusService service.StatusService
	JWTUtil       *utils.JWTUtil
	DB            handler.Pinger
	Logger        *slog.Logger
	CORSOrigin    string
}

// New builds the engine with every route registered under /api
func New(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	origin := d.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.CORS(origin))

	authHandler := handler.NewAuthHandler(d.AuthService)
	statusHandler := handler.NewStatusHandler(d.StatusService)
	jwtAuthMW := middleware.JWTAuthMiddleware(d.JWTUtil)

	api := r.Group("/api")
	authHandler.RegisterAuthRoutes(api)
	statusHandler.RegisterStatusRoutes(api, jwtAuthMW)

	if d.DB != nil {
		r.GET("/health", handler.Health(d.DB))
	}
	return r
}
