// Package events fans note changes out to in-process subscribers.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChangeType describes what happened to a note.
type ChangeType string

const (
	NoteCreated ChangeType = "created"
	NoteUpdated ChangeType = "updated"
	NoteDeleted ChangeType = "deleted"
)

// NoteChange is one published change. Bulk mutations carry every requested id in NoteIDs.
type NoteChange struct {
	Type      ChangeType `json:"type"`
	NoteID    int64      `json:"note_id,omitempty"`
	NoteIDs   []int64    `json:"note_ids,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// DefaultBuffer is the per-subscriber channel capacity used by NewHub when size <= 0.
const DefaultBuffer = 16

// Hub is a non-blocking broadcaster. A subscriber whose buffer is full misses the change.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan NoteChange
	buffer int
	logger *slog.Logger
}

// NewHub creates a Hub with the given per-subscriber buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[string]chan NoteChange),
		buffer: buffer,
		logger: slog.Default(),
	}
}

// Subscribe registers a new subscriber. The returned func removes it and closes
// the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (string, <-chan NoteChange, func()) {
	id := uuid.NewString()
	ch := make(chan NoteChange, h.buffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return id, ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers change to every subscriber without blocking.
func (h *Hub) Publish(change NoteChange) {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- change:
		default:
			h.logger.Debug("dropping note change for slow subscriber", "subscriber", id, "type", change.Type)
		}
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
