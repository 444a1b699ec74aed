package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{log: log.With("handler", "SSEHandler"), hub: hub}
}

// GET /sse/stream?topics=<uuid>,<uuid>
// Streams content mutation events for the requested topic channels.
func (h *SSEHandler) SSEStream(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("topics"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing topics"})
		return
	}

	var channels []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id " + part})
			return
		}
		channels = append(channels, id.String())
	}
	if len(channels) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing topics"})
		return
	}

	client := h.hub.NewSSEClient()
	for _, ch := range channels {
		h.hub.AddChannel(client, ch)
	}

	h.log.Info("SSE stream open", "clientID", client.ID, "channels", len(channels))
	h.hub.ServeHTTP(c.Writer, c.Request, client)
	h.hub.CloseClient(client)
}
