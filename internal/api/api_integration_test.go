package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayush-gupta456/pass-op/internal/auth"
	"github.com/ayush-gupta456/pass-op/internal/database"
	"github.com/ayush-gupta456/pass-op/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// apiRouter odwzorowuje routing z cmd/server/main.go, łącznie z middleware.
func apiRouter() http.Handler {
	router := chi.NewRouter()

	router.Get("/health", testServer.HealthCheckHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(testServer.RequireStore)
			r.Post("/register", testServer.RegisterHandler)
			r.Post("/login", testServer.LoginHandler)
			r.Post("/forgot-password", testServer.ForgotPasswordHandler)
			r.Post("/reset-password", testServer.ResetPasswordHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(testServer.RequireStore)
			r.Use(testServer.AuthMiddleware)
			r.Get("/me", testServer.GetCurrentUserHandler)
			r.Get("/passwords", testServer.ListEntriesHandler)
			r.Post("/passwords", testServer.CreateEntryHandler)
			r.Put("/passwords/{entryId}", testServer.UpdateEntryHandler)
			r.Delete("/passwords/{entryId}", testServer.DeleteEntryHandler)
			r.Get("/generate-password", testServer.GeneratePasswordHandler)
			r.Get("/events", testServer.GetEventsHandler)
		})
	})

	return router
}

func doAPIRequest(t *testing.T, router http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAPI_FullUserFlow(t *testing.T) {
	router := apiRouter()

	registerReq := RegisterRequest{Username: "e2e_alice", Email: "e2e_alice@example.com", Password: "secret1"}
	rr := doAPIRequest(t, router, "POST", "/api/v1/auth/register", "", registerReq)
	require.Equal(t, http.StatusCreated, rr.Code)

	loginReq := LoginRequest{Identifier: "e2e_alice", Password: "secret1"}
	rr = doAPIRequest(t, router, "POST", "/api/v1/auth/login", "", loginReq)
	require.Equal(t, http.StatusOK, rr.Code)

	var loginResp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)
	token := loginResp.Token

	rr = doAPIRequest(t, router, "GET", "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var claims auth.AppClaims
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &claims))
	require.Equal(t, "e2e_alice", claims.Username)

	entryReq := VaultEntryRequest{Site: "https://example.com", Username: "alice", Password: "p4ssw0rd"}
	rr = doAPIRequest(t, router, "POST", "/api/v1/passwords", token, entryReq)
	require.Equal(t, http.StatusCreated, rr.Code)

	entries := decodeEntries(t, rr)
	require.Len(t, entries, 1)
	require.Equal(t, "https://example.com", entries[0].Site)
	require.Equal(t, "p4ssw0rd", entries[0].Password)
	entryID := entries[0].ID

	updateReq := VaultEntryRequest{Site: "https://example.com", Username: "alice", Password: "zmienione"}
	rr = doAPIRequest(t, router, "PUT", fmt.Sprintf("/api/v1/passwords/%s", entryID), token, updateReq)
	require.Equal(t, http.StatusOK, rr.Code)
	entries = decodeEntries(t, rr)
	require.Len(t, entries, 1)
	require.Equal(t, "zmienione", entries[0].Password)

	rr = doAPIRequest(t, router, "DELETE", fmt.Sprintf("/api/v1/passwords/%s", entryID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	entries = decodeEntries(t, rr)
	require.Len(t, entries, 0)
}

func TestAPI_AuthMiddleware(t *testing.T) {
	router := apiRouter()

	t.Run("missing token", func(t *testing.T) {
		rr := doAPIRequest(t, router, "GET", "/api/v1/passwords", "", nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/passwords", nil)
		req.Header.Set("Authorization", "Token abc.def.ghi")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rr := doAPIRequest(t, router, "GET", "/api/v1/passwords", "nie.jest.jwt", nil)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		user := &models.User{ID: testUserClaims.UserID, Username: testUserClaims.Username}
		forged, err := auth.GenerateJWT(user, "inny_sekret")
		require.NoError(t, err)

		rr := doAPIRequest(t, router, "GET", "/api/v1/passwords", forged, nil)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestAPI_ResetPasswordFlow(t *testing.T) {
	router := apiRouter()

	registerReq := RegisterRequest{Username: "e2e_reset", Email: "e2e_reset@example.com", Password: "starehaslo"}
	rr := doAPIRequest(t, router, "POST", "/api/v1/auth/register", "", registerReq)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Token trafia do bazy bezpośrednio, bez wysyłki SMTP.
	token, err := auth.GenerateResetToken()
	require.NoError(t, err)
	require.NoError(t, testServer.store.SetResetToken(context.Background(),
		"e2e_reset@example.com", token, time.Now().Add(time.Hour)))

	resetReq := ResetPasswordRequest{Token: token, NewPassword: "nowehaslo"}
	rr = doAPIRequest(t, router, "POST", "/api/v1/auth/reset-password", "", resetReq)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doAPIRequest(t, router, "POST", "/api/v1/auth/login", "",
		LoginRequest{Identifier: "e2e_reset", Password: "starehaslo"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doAPIRequest(t, router, "POST", "/api/v1/auth/login", "",
		LoginRequest{Identifier: "e2e_reset", Password: "nowehaslo"})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAPI_GetEvents(t *testing.T) {
	router := apiRouter()

	entryReq := VaultEntryRequest{Site: "https://events.example.com", Username: "bob", Password: "sekret"}
	rr := doAPIRequest(t, router, "POST", "/api/v1/passwords", testUserToken, entryReq)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doAPIRequest(t, router, "GET", "/api/v1/events?since=0", testUserToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var events []database.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.GreaterOrEqual(t, len(events), 1)

	lastEventID := events[len(events)-1].ID

	rr = doAPIRequest(t, router, "GET", fmt.Sprintf("/api/v1/events?since=%d", lastEventID), testUserToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var noEvents []database.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &noEvents))
	require.Len(t, noEvents, 0, "There should be no new events since the last known ID")
}

func TestAPI_HealthCheck(t *testing.T) {
	router := apiRouter()

	rr := doAPIRequest(t, router, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	require.Equal(t, "OK", health.Status)
	require.Equal(t, "connected", health.Database)
}
