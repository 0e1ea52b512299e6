package model

import "time"

// Booking mirrors a row of the bookings table.  Phone always holds the
// canonical normalized number; Email and Notes are nullable.  BookingTime is
// stored as HH:MM:SS and always falls on the configured slot grid.
type Booking struct {
	ID          uint64    `json:"id"`
	Ref         string    `json:"booking_ref"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	BookingDate string    `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	PartySize   int       `json:"party_size"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
