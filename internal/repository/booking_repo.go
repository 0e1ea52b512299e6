package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique key violation.
const mysqlDupEntry = 1062

// BookingRepo provides persistence for accepted bookings.  The bookings
// table carries a unique key on (phone, booking_date, booking_time); the
// repo translates a violation into ErrDuplicateBooking so that a lost race
// against a concurrent submission surfaces to the user exactly like the
// pre-insert duplicate check.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CountByPhoneDateTime counts bookings with the exact canonical phone, date
// and time.  Any count above zero means the caller already holds this slot.
func (r *BookingRepo) CountByPhoneDateTime(ctx context.Context, phone, date, tm string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE phone = ? AND booking_date = ? AND booking_time = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, phone, date, tm).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountByDateTime counts bookings in the slot regardless of phone; used for
// the per-slot capacity check.
func (r *BookingRepo) CountByDateTime(ctx context.Context, date, tm string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE booking_date = ? AND booking_time = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, date, tm).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Insert persists a normalized booking and returns the stored row with its
// generated id, reference and creation timestamp.  A unique key violation is
// reported as ErrDuplicateBooking.  Empty email/notes are stored as NULL.
func (r *BookingRepo) Insert(ctx context.Context, b *booking.Normalized) (*model.Booking, error) {
	const q = `INSERT INTO bookings
		(booking_ref, full_name, phone, email, booking_date, booking_time, party_size, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	ref := uuid.NewString()
	result, err := r.db.ExecContext(ctx, q,
		ref, b.FullName, b.Phone, nullable(b.Email),
		b.BookingDate, b.BookingTime, b.PartySize, nullable(b.Notes),
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, uint64(id))
}

// FindByPhones returns bookings stored under any of the candidate phone
// forms, most recent first.  An empty candidate list yields no rows.
func (r *BookingRepo) FindByPhones(ctx context.Context, phones []string, limit int) ([]model.Booking, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(phones)), ",")
	q := `SELECT id, booking_ref, full_name, phone, email, booking_date, booking_time,
			party_size, notes, created_at
		FROM bookings
		WHERE phone IN (` + placeholders + `)
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	args := make([]interface{}, 0, len(phones)+1)
	for _, p := range phones {
		args = append(args, p)
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// getByID loads a single booking after insertion to populate the
// server-assigned creation timestamp.
func (r *BookingRepo) getByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, booking_ref, full_name, phone, email, booking_date, booking_time,
			party_size, notes, created_at
		FROM bookings WHERE id = ?`
	return scanBooking(r.db.QueryRowContext(ctx, q, id))
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var email, notes sql.NullString
	var date time.Time
	var tm []byte
	err := row.Scan(
		&b.ID, &b.Ref, &b.FullName, &b.Phone, &email,
		&date, &tm, &b.PartySize, &notes, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	// parseTime turns DATE columns into time.Time; TIME columns stay raw.
	// Keep the wire formats YYYY-MM-DD and HH:MM:SS.
	b.BookingDate = date.Format("2006-01-02")
	b.BookingTime = string(tm)
	if email.Valid {
		v := email.String
		b.Email = &v
	}
	if notes.Valid {
		v := notes.String
		b.Notes = &v
	}
	return &b, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
