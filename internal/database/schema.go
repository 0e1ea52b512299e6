package database

import (
	"context"
	"database/sql"
	"time"
)

// bookingsDDL creates the single table the service uses.  The unique key on
// (phone, booking_date, booking_time) is the authoritative guard against two
// concurrent submissions landing in the same slot; the application-level
// duplicate check is only a courtesy that runs first.
const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id           INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	booking_ref  CHAR(36)     NOT NULL,
	full_name    VARCHAR(120) NOT NULL,
	phone        VARCHAR(30)  NOT NULL,
	email        VARCHAR(120) NULL,
	booking_date DATE         NOT NULL,
	booking_time TIME         NOT NULL,
	party_size   INT          NOT NULL,
	notes        TEXT         NULL,
	created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uq_phone_slot (phone, booking_date, booking_time),
	UNIQUE KEY uq_booking_ref (booking_ref),
	INDEX idx_date_time (booking_date, booking_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

// EnsureSchema creates the bookings table when it does not exist yet.
// Intended for local development (AUTO_SETUP_DB); production schemas should
// be managed outside the application.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, bookingsDDL)
	return err
}
