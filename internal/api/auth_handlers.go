package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ayush-gupta456/pass-op/internal/auth"
	"github.com/ayush-gupta456/pass-op/internal/database"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

const minPasswordLength = 6

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" example:"alice"`
	Password   string `json:"password" example:"secret1"`
}

type TokenResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
	Message string `json:"message" example:"Login successful"`
}

type MessageResponse struct {
	Message string `json:"message" example:"User registered successfully! You can now log in."`
}

// @Summary      Register a new account
// @Description  Creates a user account. Username and email are lowercased and must be unique. The caller must log in separately afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Account details"
// @Success      201              {object}  MessageResponse
// @Failure      400              {string}  string "Validation error"
// @Failure      409              {string}  string "Username or email already taken"
// @Failure      500              {string}  string "Internal Server Error"
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Username, email, and password are required", http.StatusBadRequest)
		return
	}

	if !emailPattern.MatchString(req.Email) {
		http.Error(w, "Please provide a valid email address", http.StatusBadRequest)
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		http.Error(w, "Username must be 3-20 characters long and contain only letters, numbers, and underscores", http.StatusBadRequest)
		return
	}

	if len(req.Password) < minPasswordLength {
		http.Error(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}

	username := strings.ToLower(req.Username)
	email := strings.ToLower(req.Email)

	usernameTaken, err := s.store.UsernameExists(r.Context(), username)
	if err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	if usernameTaken {
		http.Error(w, "Username is already taken. Please choose a different username.", http.StatusConflict)
		return
	}

	emailTaken, err := s.store.EmailExists(r.Context(), email)
	if err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	if emailTaken {
		http.Error(w, "Email is already registered. Please use a different email or try logging in.", http.StatusConflict)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("ERROR: Failed to hash password: %v", err)
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		// The unique constraints close the gap left by the two pre-checks when
		// identical registrations race.
		if errors.Is(err, database.ErrDuplicateUsername) {
			http.Error(w, "Username is already taken. Please choose a different username.", http.StatusConflict)
			return
		}
		if errors.Is(err, database.ErrDuplicateEmail) {
			http.Error(w, "Email is already registered. Please use a different email or try logging in.", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to create user: %v", err)
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	if err := s.store.LogEvent(r.Context(), user.ID, "user_registered", map[string]string{"username": user.Username}); err != nil {
		log.Printf("WARN: Failed to log registration event: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(MessageResponse{Message: "User registered successfully! You can now log in."})
}

// @Summary      Log in
// @Description  Authenticates with a username or email plus password and returns a bearer token valid for 7 days.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200           {object}  TokenResponse
// @Failure      400           {string}  string "Missing fields"
// @Failure      401           {string}  string "Invalid credentials"
// @Failure      500           {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Identifier == "" || req.Password == "" {
		http.Error(w, "Email/Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByIdentifier(r.Context(), strings.ToLower(req.Identifier))
	if err != nil {
		http.Error(w, "Failed to login", http.StatusInternalServerError)
		return
	}
	// The same body for an unknown identifier and a wrong password, so the
	// response never confirms which accounts exist.
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(user, s.config.JWT.Secret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{Token: token, Message: "Login successful"})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// @Summary      Request a password reset
// @Description  Generates a one-hour single-use reset token for the account with the given email and sends it as a link by email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        forgotPasswordRequest  body      ForgotPasswordRequest  true  "Account email"
// @Success      200  {object}  MessageResponse
// @Failure      400  {string}  string "Invalid email"
// @Failure      404  {string}  string "User not found"
// @Failure      500  {string}  string "Email send failure"
// @Router       /auth/forgot-password [post]
func (s *Server) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !emailPattern.MatchString(req.Email) {
		http.Error(w, "Please provide a valid email address", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(req.Email)

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, "Failed to process forgot password request", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		log.Printf("ERROR: %v", err)
		http.Error(w, "Failed to process forgot password request", http.StatusInternalServerError)
		return
	}

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.store.SetResetToken(r.Context(), email, token, expiresAt); err != nil {
		http.Error(w, "Failed to process forgot password request", http.StatusInternalServerError)
		return
	}

	if err := s.mailer.SendPasswordResetEmail(email, token); err != nil {
		log.Printf("ERROR: %v", err)
		http.Error(w, "Failed to send password reset email. Try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{Message: "Password reset email sent. Please check your inbox."})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" example:"4f7d..."`
	NewPassword string `json:"newPassword" example:"newsecret"`
}

// @Summary      Reset password
// @Description  Consumes a pending reset token and stores the new password. The token is cleared in the same update, so it cannot be replayed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body      ResetPasswordRequest  true  "Reset token and new password"
// @Success      200  {object}  MessageResponse
// @Failure      400  {string}  string "Missing fields, short password, or invalid/expired token"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /auth/reset-password [post]
func (s *Server) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		http.Error(w, "Token and new password are required", http.StatusBadRequest)
		return
	}

	if len(req.NewPassword) < minPasswordLength {
		http.Error(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("ERROR: Failed to hash password: %v", err)
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	consumed, err := s.store.ConsumeResetToken(r.Context(), req.Token, hashedPassword)
	if err != nil {
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}
	// A wrong token and an expired one get the same answer on purpose.
	if !consumed {
		http.Error(w, "Invalid or expired token. Please request a new password reset.", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessageResponse{Message: "Password reset successfully. You can now log in with your new password."})
}
