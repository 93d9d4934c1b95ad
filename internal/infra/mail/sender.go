package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/propertypro/leads-backend/internal/entity"
)

// Sender wraps a gomail dialer bound to one SMTP configuration.
// Construction is cheap and does no network I/O; a fresh Sender is
// built per outbound operation because settings can change between calls.
type Sender struct {
	Host      string
	Port      int
	SSL       bool
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

func NewSender(smtp entity.SMTPSettings) *Sender {
	return &Sender{
		Host:      smtp.Host,
		Port:      smtp.Port,
		SSL:       smtp.Secure,
		Username:  smtp.Username,
		Password:  smtp.Password,
		FromName:  smtp.FromName,
		FromEmail: smtp.FromEmail,
	}
}

// Send delivers a single HTML message. The SMTP error comes back
// untouched so callers can surface the transport text verbatim.
func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.FromEmail, s.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	d.SSL = s.SSL

	return d.DialAndSend(m)
}
