package notifier

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/iliyamo/restaurant-table-booking/internal/config"
)

// SMTPNotifier sends mail through an authenticated SMTP relay with STARTTLS
// (Gmail submission on port 587 by default).
type SMTPNotifier struct {
	cfg      config.SMTPConfig
	fromName string
}

// NewSMTP returns an SMTPNotifier sending as the configured SMTP user with
// the given display name.
func NewSMTP(cfg config.SMTPConfig, fromName string) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, fromName: fromName}
}

// Send delivers the message synchronously.  gomail dials per message, which
// is fine at booking-form volume.  The context is accepted for interface
// symmetry; gomail does not support cancellation mid-send.
func (n *SMTPNotifier) Send(_ context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", n.cfg.User, n.fromName)
	msg.SetAddressHeader("To", m.To, m.ToName)
	if m.BCC != "" {
		msg.SetHeader("Bcc", m.BCC)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Pass)
	return d.DialAndSend(msg)
}
