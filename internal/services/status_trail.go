package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StatusTrail is the ordered progress narrative for one content submission.
// Entries are timestamped, append-only, and broadcast to topic subscribers as
// they are added.
type StatusTrail struct {
	mu            sync.Mutex
	entries       []string
	notifier      ContentNotifier
	topicID       uuid.UUID
	contentTypeID int
}

func NewStatusTrail(notifier ContentNotifier, topicID uuid.UUID, contentTypeID int) *StatusTrail {
	return &StatusTrail{
		notifier:      notifier,
		topicID:       topicID,
		contentTypeID: contentTypeID,
	}
}

func (t *StatusTrail) Add(ctx context.Context, status string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.entries = append(t.entries, fmt.Sprintf("[%s] %s", time.Now().UTC().Format(time.RFC3339), status))
	t.mu.Unlock()

	if t.notifier != nil {
		t.notifier.StatusChanged(ctx, t.topicID, t.contentTypeID, status)
	}
}

// Entries returns a copy; the trail itself stays append-only.
func (t *StatusTrail) Entries() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}
