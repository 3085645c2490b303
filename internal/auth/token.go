package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateResetToken returns 32 random bytes encoded as hex.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
