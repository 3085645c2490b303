package mail

import (
	"fmt"

	"github.com/ayush-gupta456/pass-op/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound application email over SMTP.
type Mailer struct {
	cfg     config.SMTPConfig
	appHost string
	dialer  *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig, appHost string) *Mailer {
	return &Mailer{
		cfg:     cfg,
		appHost: appHost,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// ResetURL builds the link embedded in a password reset email.
func (m *Mailer) ResetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", m.appHost, token)
}

func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>You requested to reset your password. Click <a href="%s">here</a> to reset it. The link is valid for one hour.</p>`,
		m.ResetURL(token),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}
