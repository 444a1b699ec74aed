package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/educoreai-lotus/contentstudio-backend/internal/handlers"
	"github.com/educoreai-lotus/contentstudio-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	ContentHandler *handlers.ContentHandler
	SSEHandler     *handlers.SSEHandler
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/sse/stream", cfg.SSEHandler.SSEStream)

	api := protected.Group("/api")
	{
		api.POST("/topics/:id/content", cfg.ContentHandler.SubmitContent)
		api.GET("/topics/:id/content", cfg.ContentHandler.GetTopicContent)
		api.GET("/topics/:id/content/:type", cfg.ContentHandler.GetContent)
		api.GET("/content/:id/history", cfg.ContentHandler.GetContentHistory)
	}

	return router
}
