package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/coder/websocket"

	"juan-note/internal/contextutil"
	"juan-note/internal/events"
)

// Subscriber is the part of the event hub the stream needs.
type Subscriber interface {
	Subscribe() (string, <-chan events.NoteChange, func())
}

// EventsHandler streams note changes over a websocket.
type EventsHandler struct {
	hub          Subscriber
	acceptOpts   *websocket.AcceptOptions
	writeTimeout time.Duration
}

// NewEventsHandler creates a new EventsHandler. An origin of "*" accepts any
// origin. Origins may be full ("http://localhost:1420") or host patterns.
func NewEventsHandler(hub Subscriber, allowedOrigins []string) *EventsHandler {
	opts := &websocket.AcceptOptions{}
	if slices.Contains(allowedOrigins, "*") {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = originHosts(allowedOrigins)
	}
	return &EventsHandler{
		hub:          hub,
		acceptOpts:   opts,
		writeTimeout: 5 * time.Second,
	}
}

// originHosts reduces origins to the host patterns the websocket handshake
// compares against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			origin = u.Host
		}
		hosts = append(hosts, origin)
	}
	return hosts
}

// ServeHTTP upgrades the connection and forwards every change as a JSON text message
// until the client goes away.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := contextutil.LoggerFromContext(r.Context())

	conn, err := websocket.Accept(w, r, h.acceptOpts)
	if err != nil {
		logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	id, changes, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()
	logger.InfoContext(r.Context(), "event subscriber connected", "subscriber", id)

	// Incoming messages are ignored; ctx ends when the peer closes.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(r.Context(), "event subscriber disconnected", "subscriber", id)
			return
		case change, ok := <-changes:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.write(ctx, conn, change); err != nil {
				logger.WarnContext(r.Context(), "failed to write note change", "subscriber", id, "error", err)
				return
			}
		}
	}
}

func (h *EventsHandler) write(ctx context.Context, conn *websocket.Conn, change events.NoteChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
