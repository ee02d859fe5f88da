package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PritamP20/Streamer.fun/internal/config"
	"github.com/PritamP20/Streamer.fun/internal/dispatch"
	"github.com/PritamP20/Streamer.fun/internal/hub"
	"github.com/PritamP20/Streamer.fun/internal/log"
)

// WSHandler upgrades connections and feeds their frames into the
// dispatcher queue. It does no parsing itself; the dispatcher owns the
// protocol.
type WSHandler struct {
	hub        *hub.Hub
	dispatcher *dispatch.Dispatcher
	upgrader   websocket.Upgrader
}

// NewWSHandler creates a new WebSocket handler honoring the configured
// CORS origin allow-list ("*" allows everything).
func NewWSHandler(h *hub.Hub, d *dispatch.Dispatcher, cors config.CORSConfig) *WSHandler {
	return &WSHandler{
		hub:        h,
		dispatcher: d,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cors.AllowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == cors.AllowedOrigin
			},
		},
	}
}

// HandleWebSocket handles the WebSocket upgrade and starts the pumps.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := log.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn)
	client.SetDisconnectHandler(func(c *hub.Client) {
		h.dispatcher.EnqueueDisconnect(c.ID)
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(func(c *hub.Client, data []byte) {
		h.dispatcher.Enqueue(c.ID, data)
	})
}

// RegisterRoutes registers the WebSocket route.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
