package api

import (
	"encoding/json"
	"net/http"
	"time"
)

var serverStart = time.Now()

type HealthResponse struct {
	Status    string    `json:"status" example:"OK"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime" example:"1234.5"`
	Database  string    `json:"database" example:"connected"`
}

// @Summary      Health check
// @Description  Reports service liveness and whether the database is reachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := s.store.Ping(r.Context()); err != nil {
		dbStatus = "disconnected"
	}

	response := HealthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
		Uptime:    time.Since(serverStart).Seconds(),
		Database:  dbStatus,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
