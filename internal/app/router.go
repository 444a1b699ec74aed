package app

import (
	"github.com/gin-gonic/gin"

	"github.com/educoreai-lotus/contentstudio-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware: middleware.Auth,
		ContentHandler: handlers.Content,
		SSEHandler:     handlers.SSE,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
