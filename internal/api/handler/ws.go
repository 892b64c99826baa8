package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/protocol"
)

const wsWriteWait = 10 * time.Second

// WSHandler bridges websocket clients onto the bus as full participants:
// frames they send are published, and everything published by others is
// relayed back. A remote guest speaking the wire protocol through this
// bridge is indistinguishable from a local one.
type WSHandler struct {
	bus      *bus.Bus
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler creates a websocket bridge handler
func NewWSHandler(b *bus.Bus, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		bus: b,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The relay serves a trusted local network
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// Connect handles GET /api/v1/ws
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer ws.Close()

	conn := h.bus.Subscribe("ws:" + ws.RemoteAddr().String())
	defer conn.Close()

	h.logger.Info("websocket bridge opened", slog.String("remote", ws.RemoteAddr().String()))

	// Write pump: bus -> socket. Ends when the subscription closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range conn.Messages() {
			data, err := protocol.Encode(msg)
			if err != nil {
				h.logger.Warn("dropping unencodable message", slog.Any("error", err))
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// Read pump: socket -> bus
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			h.logger.Warn("dropping malformed frame", slog.Any("error", err))
			continue
		}
		if msg == nil {
			// Unknown message type, ignored by protocol rule
			continue
		}
		conn.Send(msg)
	}

	conn.Close()
	<-done
	h.logger.Info("websocket bridge closed", slog.String("remote", ws.RemoteAddr().String()))
}
