package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts upgrades from the listed origins. An empty list or
// "*" accepts any origin, and requests without an Origin header are always
// accepted.
func NewWebSocket(allowedOrigins []string) *WebSocket {
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}

	return &WebSocket{Upgrader: upgrader}
}
