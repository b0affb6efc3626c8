package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/rs/zerolog"
)

// Mailer delivers a single outbound message.
type Mailer interface {
	Send(job model.EmailJob) error
}

// SMTPMailer delivers mail through a plain SMTP relay. With no host
// configured it logs and drops messages, which keeps development
// environments working without a relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
	log  zerolog.Logger
}

// New creates an SMTPMailer from configuration.
func New(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
		log:  log.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers one message.
func (m *SMTPMailer) Send(job model.EmailJob) error {
	if m.host == "" {
		m.log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("no smtp relay configured, dropping message")
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, job.To, job.Subject, job.Body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{job.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
