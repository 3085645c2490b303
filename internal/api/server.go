package api

import (
	"github.com/ayush-gupta456/pass-op/internal/config"
	"github.com/ayush-gupta456/pass-op/internal/database"
	"github.com/ayush-gupta456/pass-op/internal/mail"
	"github.com/ayush-gupta456/pass-op/internal/websocket"
)

type Server struct {
	config *config.Config
	store  *database.Store
	mailer *mail.Mailer
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.Store, mailer *mail.Mailer, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		mailer: mailer,
		wsHub:  wsHub,
	}
}
