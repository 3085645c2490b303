package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jaevor/go-nanoid"
)

const generatorCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*-_"

const (
	defaultGeneratedLength = 16
	maxGeneratedLength     = 128
)

type GeneratedPasswordResponse struct {
	Password string `json:"password" example:"x7!Kp2_mQ9vR4tZw"`
	Length   int    `json:"length" example:"16"`
}

// @Summary      Generate a random password
// @Description  Returns a cryptographically random password drawn from letters, digits and symbols.
// @Tags         passwords
// @Produce      json
// @Security     BearerAuth
// @Param        length  query     int  false  "Password length, 6-128 (default 16)"
// @Success      200     {object}  GeneratedPasswordResponse
// @Failure      400     {string}  string "Invalid length"
// @Failure      401     {string}  string "Unauthorized"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /generate-password [get]
func (s *Server) GeneratePasswordHandler(w http.ResponseWriter, r *http.Request) {
	length := defaultGeneratedLength
	if lengthStr := r.URL.Query().Get("length"); lengthStr != "" {
		parsed, err := strconv.Atoi(lengthStr)
		if err != nil || parsed < minPasswordLength || parsed > maxGeneratedLength {
			http.Error(w, "Length must be a number between 6 and 128", http.StatusBadRequest)
			return
		}
		length = parsed
	}

	generate, err := nanoid.CustomASCII(generatorCharset, length)
	if err != nil {
		http.Error(w, "Failed to generate password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GeneratedPasswordResponse{
		Password: generate(),
		Length:   length,
	})
}
