package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/lobby"
	"github.com/mememaster/lobby/internal/protocol"
)

// keepalivePeriod is how often an SSE comment is pushed to hold the
// connection open through proxies
const keepalivePeriod = 15 * time.Second

// EventsHandler streams a room's bus traffic to browser clients as
// server-sent events
type EventsHandler struct {
	bus    *bus.Bus
	mgr    *lobby.Manager
	logger *slog.Logger
}

// NewEventsHandler creates an events handler
func NewEventsHandler(b *bus.Bus, mgr *lobby.Manager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		bus:    b,
		mgr:    mgr,
		logger: logger.With(slog.String("component", "sse")),
	}
}

// Stream handles GET /api/v1/rooms/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := roomCode(r)
	if _, err := h.mgr.GetRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Attach before acknowledging, so traffic published after the client
	// sees the 200 is never missed
	conn := h.bus.Subscribe("sse:" + r.RemoteAddr)
	defer conn.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("event stream opened",
		slog.String("code", string(code)),
		slog.String("remote", r.RemoteAddr))

	keepalive := time.NewTicker(keepalivePeriod)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("event stream closed", slog.String("remote", r.RemoteAddr))
			return

		case <-keepalive.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()

		case msg, open := <-conn.Messages():
			if !open {
				return
			}
			// Streams are per-room; traffic for other rooms is dropped here
			if msg.Room() != code {
				continue
			}
			data, err := protocol.Encode(msg)
			if err != nil {
				h.logger.Warn("dropping unencodable message", slog.Any("error", err))
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type(), data)
			flusher.Flush()
		}
	}
}
