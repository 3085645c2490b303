// @title           PassOP API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/ayush-gupta456/pass-op/internal/api"
	"github.com/ayush-gupta456/pass-op/internal/config"
	"github.com/ayush-gupta456/pass-op/internal/database"
	"github.com/ayush-gupta456/pass-op/internal/mail"
	"github.com/ayush-gupta456/pass-op/internal/websocket"
	"github.com/ayush-gupta456/pass-op/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/ayush-gupta456/pass-op/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	mailer := mail.NewMailer(cfg.SMTP, cfg.AppHost)
	server := api.NewServer(cfg, store, mailer, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(server.RequireStore)
		r.Post("/register", server.RegisterHandler)
		r.Post("/login", server.LoginHandler)
		r.Post("/forgot-password", server.ForgotPasswordHandler)
		r.Post("/reset-password", server.ResetPasswordHandler)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(server.RequireStore)
		r.Use(server.AuthMiddleware)
		r.Get("/me", server.GetCurrentUserHandler)
		r.Get("/passwords", server.ListEntriesHandler)
		r.Post("/passwords", server.CreateEntryHandler)
		r.Put("/passwords/{entryId}", server.UpdateEntryHandler)
		r.Delete("/passwords/{entryId}", server.DeleteEntryHandler)
		r.Get("/generate-password", server.GeneratePasswordHandler)
		r.Get("/events", server.GetEventsHandler)
	})

	staticFiles, err := fs.Sub(web.Static, "static")
	if err != nil {
		log.Fatalf("Nie można zainicjować zasobów frontendu: %v", err)
	}
	fileServer := http.FileServer(http.FS(staticFiles))
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		name := strings.TrimPrefix(req.URL.Path, "/")
		if name != "" {
			if _, err := fs.Stat(staticFiles, name); err != nil {
				// Ścieżki klienta, np. /reset-password, obsługuje index.html.
				http.ServeFileFS(w, req, staticFiles, "index.html")
				return
			}
		}
		fileServer.ServeHTTP(w, req)
	}))

	addr := ":" + cfg.Server.Port
	log.Printf("Uruchamianie serwera na porcie %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
