package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ayush-gupta456/pass-op/internal/database"
	_ "github.com/ayush-gupta456/pass-op/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type VaultEntryRequest struct {
	Site     string `json:"site" example:"https://example.com"`
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"p4ssw0rd"`
}

// refreshedList returns the caller's full entry list; every mutation responds
// with it so the client never has to merge partial state.
func (s *Server) refreshedList(ctx context.Context, w http.ResponseWriter, userID int64, status int) {
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		http.Error(w, "Failed to fetch passwords", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(entries)
}

// @Summary      List vault entries
// @Description  Returns every stored credential entry owned by the authenticated user.
// @Tags         passwords
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.VaultEntry
// @Failure      401  {string}  string "Unauthorized"
// @Failure      403  {string}  string "Invalid or expired token"
// @Failure      503  {string}  string "Database not connected"
// @Router       /passwords [get]
func (s *Server) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	s.refreshedList(r.Context(), w, claims.UserID, http.StatusOK)
}

// @Summary      Create a vault entry
// @Description  Stores a new credential entry for the authenticated user and returns the refreshed list.
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entry  body      VaultEntryRequest  true  "Entry fields"
// @Success      201    {array}   models.VaultEntry
// @Failure      400    {string}  string "Missing fields"
// @Failure      401    {string}  string "Unauthorized"
// @Failure      500    {string}  string "Internal Server Error"
// @Router       /passwords [post]
func (s *Server) CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req VaultEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site := strings.TrimSpace(req.Site)
	username := strings.TrimSpace(req.Username)
	if site == "" || username == "" || req.Password == "" {
		http.Error(w, "Site, Username, and Password are required", http.StatusBadRequest)
		return
	}

	params := database.CreateEntryParams{
		ID:       uuid.New(),
		UserID:   claims.UserID,
		Site:     site,
		Username: username,
		Password: req.Password,
	}

	entry, err := s.store.CreateEntry(r.Context(), params)
	if err != nil {
		http.Error(w, "Failed to create password entry", http.StatusInternalServerError)
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, "entry_created", entry); err != nil {
		log.Printf("WARN: Failed to log entry_created event: %v", err)
	}

	s.refreshedList(r.Context(), w, claims.UserID, http.StatusCreated)
}

// @Summary      Update a vault entry
// @Description  Updates an entry in place. The filter combines the entry id with the caller's user id, so other users' entries are never touched.
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entryId  path      string             true  "Entry ID" format(uuid)
// @Param        entry    body      VaultEntryRequest  true  "New entry fields"
// @Success      200      {array}   models.VaultEntry
// @Failure      400      {string}  string "Invalid ID format or missing fields"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /passwords/{entryId} [put]
func (s *Server) UpdateEntryHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		http.Error(w, "Invalid ID format", http.StatusBadRequest)
		return
	}

	var req VaultEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site := strings.TrimSpace(req.Site)
	username := strings.TrimSpace(req.Username)
	if site == "" || username == "" || req.Password == "" {
		http.Error(w, "Site, Username, and Password are required", http.StatusBadRequest)
		return
	}

	params := database.UpdateEntryParams{
		ID:       entryID,
		UserID:   claims.UserID,
		Site:     site,
		Username: username,
		Password: req.Password,
	}

	updated, err := s.store.UpdateEntry(r.Context(), params)
	if err != nil {
		http.Error(w, "Failed to update password entry", http.StatusInternalServerError)
		return
	}

	if updated {
		if err := s.store.LogEvent(r.Context(), claims.UserID, "entry_updated", map[string]string{"id": entryID.String()}); err != nil {
			log.Printf("WARN: Failed to log entry_updated event: %v", err)
		}
	}

	s.refreshedList(r.Context(), w, claims.UserID, http.StatusOK)
}

// @Summary      Delete a vault entry
// @Description  Deletes an entry owned by the authenticated user and returns the refreshed list.
// @Tags         passwords
// @Produce      json
// @Security     BearerAuth
// @Param        entryId  path      string  true  "Entry ID" format(uuid)
// @Success      200      {array}   models.VaultEntry
// @Failure      400      {string}  string "Invalid ID format"
// @Failure      401      {string}  string "Unauthorized"
// @Failure      500      {string}  string "Internal Server Error"
// @Router       /passwords/{entryId} [delete]
func (s *Server) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		http.Error(w, "Invalid ID format", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteEntry(r.Context(), entryID, claims.UserID)
	if err != nil {
		http.Error(w, "Failed to delete password entry", http.StatusInternalServerError)
		return
	}

	if deleted {
		if err := s.store.LogEvent(r.Context(), claims.UserID, "entry_deleted", map[string]string{"id": entryID.String()}); err != nil {
			log.Printf("WARN: Failed to log entry_deleted event: %v", err)
		}
	}

	s.refreshedList(r.Context(), w, claims.UserID, http.StatusOK)
}
