package app

import (
	"github.com/educoreai-lotus/contentstudio-backend/internal/handlers"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/sse"
)

type Handlers struct {
	Content *handlers.ContentHandler
	SSE     *handlers.SSEHandler
}

func wireHandlers(log *logger.Logger, services Services, sseHub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Content: handlers.NewContentHandler(log, services.ContentMutation),
		SSE:     handlers.NewSSEHandler(log, sseHub),
	}
}
