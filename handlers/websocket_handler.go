package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alienigenasfc/pelada-system/league"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The frontend is served from the same host; tighten this when
		// that changes.
		return true
	},
}

type WebSocketHandler struct {
	hub    *league.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *league.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs upgrades the connection and joins the client to the single
// live room. The channel is push-only; inbound frames are discarded.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := &league.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: league.LiveRoom,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
