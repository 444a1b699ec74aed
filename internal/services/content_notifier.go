package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/educoreai-lotus/contentstudio-backend/internal/domain"
	"github.com/educoreai-lotus/contentstudio-backend/internal/sse"
)

// ContentNotifier pushes mutation progress to anyone streaming the topic's
// channel. All methods are best-effort; a failed broadcast never fails the
// mutation that triggered it.
type ContentNotifier interface {
	StatusChanged(ctx context.Context, topicID uuid.UUID, contentTypeID int, status string)
	ContentSaved(ctx context.Context, topicID uuid.UUID, content *types.Content)
	MutationFailed(ctx context.Context, topicID uuid.UUID, contentTypeID int, errorMessage string)
}

type contentNotifier struct {
	hub *sse.SSEHub
	bus SSEBus
}

// NewContentNotifier broadcasts through the local hub and, when a bus is
// configured, publishes cross-instance as well.
func NewContentNotifier(hub *sse.SSEHub, bus SSEBus) ContentNotifier {
	return &contentNotifier{hub: hub, bus: bus}
}

func (n *contentNotifier) emit(ctx context.Context, msg sse.SSEMessage) {
	if n.bus != nil {
		_ = n.bus.Publish(ctx, msg)
		return
	}
	n.hub.Broadcast(msg)
}

func (n *contentNotifier) StatusChanged(ctx context.Context, topicID uuid.UUID, contentTypeID int, status string) {
	n.emit(ctx, sse.SSEMessage{
		Channel: topicID.String(),
		Event:   sse.SSEEventContentStatus,
		Data: map[string]any{
			"topic_id":        topicID,
			"content_type_id": contentTypeID,
			"status":          status,
		},
	})
}

func (n *contentNotifier) ContentSaved(ctx context.Context, topicID uuid.UUID, content *types.Content) {
	n.emit(ctx, sse.SSEMessage{
		Channel: topicID.String(),
		Event:   sse.SSEEventContentSaved,
		Data: map[string]any{
			"topic_id": topicID,
			"content":  content,
		},
	})
}

func (n *contentNotifier) MutationFailed(ctx context.Context, topicID uuid.UUID, contentTypeID int, errorMessage string) {
	n.emit(ctx, sse.SSEMessage{
		Channel: topicID.String(),
		Event:   sse.SSEEventContentFailed,
		Data: map[string]any{
			"topic_id":        topicID,
			"content_type_id": contentTypeID,
			"error":           errorMessage,
		},
	})
}
