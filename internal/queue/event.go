// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking is persisted.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Ref         string `json:"booking_ref"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	PartySize   int    `json:"party_size"`
	EmailSent   bool   `json:"email_sent"`
	CreatedAt   string `json:"created_at"`
}
