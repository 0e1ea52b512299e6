package booking

import (
	"context"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// Counter is the slice of the store the availability pre-check needs.
type Counter interface {
	// CountByPhoneDateTime counts bookings with the exact canonical phone,
	// date (YYYY-MM-DD) and time (HH:MM:SS).
	CountByPhoneDateTime(ctx context.Context, phone, date, tm string) (int, error)
	// CountByDateTime counts bookings in the slot regardless of phone.
	CountByDateTime(ctx context.Context, date, tm string) (int, error)
}

// Store is the full persistence contract.  Insert must enforce uniqueness on
// (phone, date, time) and report a violation as the duplicate sentinel of the
// repository package; that constraint, not the pre-check, is the final
// authority against concurrent submissions for the same slot.
type Store interface {
	Counter
	Insert(ctx context.Context, b *Normalized) (*model.Booking, error)
	// FindByPhones returns bookings stored under any of the candidate phone
	// forms, most recent first, capped at limit.
	FindByPhones(ctx context.Context, phones []string, limit int) ([]model.Booking, error)
}
