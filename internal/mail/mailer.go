package mail

import (
	"fmt"
	"net/smtp"

	"github.com/Yogesharu2003/BalajiDairy/internal/config"
)

// Mailer sends plain-text mail. Usecases depend on this interface so tests
// can swap in a recorder.
type Mailer interface {
	Send(to string, subject string, body string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to string, subject string, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	addr := m.host + ":" + m.port

	// unauthenticated relay when no password is configured (local dev)
	var auth smtp.Auth
	if m.pass != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
