package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig configures the real SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
	From     string
	To       []string
}

// RealSender delivers messages over SMTP. STARTTLS is negotiated
// opportunistically by the dialer; UseSSL forces implicit TLS instead.
type RealSender struct {
	dialer *gomail.Dialer
	from   string
	to     []string
}

// NewRealSender creates a sender for the given SMTP account.
func NewRealSender(cfg SMTPConfig) *RealSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL
	return &RealSender{
		dialer: d,
		from:   cfg.From,
		to:     cfg.To,
	}
}

// Send delivers one message to all configured recipients.
func (s *RealSender) Send(msg Message) error {
	if len(s.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Close is a no-op; the dialer connects per send.
func (s *RealSender) Close() error { return nil }
