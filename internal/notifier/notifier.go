// Package notifier delivers booking confirmation email.  Delivery is strictly
// best-effort: a failure is logged and reported to the user as a soft notice,
// it never fails or rolls back the booking itself.
package notifier

import "context"

// Message is one fully rendered email.  The booking core supplies subject and
// both bodies; the notifier only moves bytes.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
	BCC     string // optional
}

// Notifier sends a rendered message.  Implementations decide the transport;
// the interface keeps SMS or LINE delivery possible later without touching
// the booking flow.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}
