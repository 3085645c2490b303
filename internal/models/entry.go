package models

import (
	"time"

	"github.com/google/uuid"
)

type VaultEntry struct {
	ID        uuid.UUID `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	UserID    int64     `json:"user_id" example:"1"`
	Site      string    `json:"site" example:"https://example.com"`
	Username  string    `json:"username" example:"alice"`
	Password  string    `json:"password" example:"p4ssw0rd"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
