package api

import (
	"log"
	"net/http"

	"github.com/ayush-gupta456/pass-op/internal/auth"
	"github.com/ayush-gupta456/pass-op/internal/websocket"
)

// ServeWsHandler upgrades the connection and registers it with the hub. The
// token travels as a query parameter because browsers cannot set headers on
// WebSocket handshakes.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := auth.VerifyJWT(tokenString, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusForbidden)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, claims.UserID)
	s.wsHub.Register <- client

	go client.ReadPump()
	go client.WritePump()
}
