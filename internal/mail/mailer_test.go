package mail

import (
	"testing"

	"github.com/ayush-gupta456/pass-op/internal/config"

	"github.com/stretchr/testify/require"
)

func TestResetURL(t *testing.T) {
	mailer := NewMailer(config.SMTPConfig{From: "noreply@example.com"}, "https://passop.example.com")

	url := mailer.ResetURL("abc123")
	require.Equal(t, "https://passop.example.com/reset-password?token=abc123", url)
}
