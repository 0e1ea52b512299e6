package booking

import (
	"context"
	"log"
)

// Messages produced by the availability pre-check.  The unique-key violation
// path in the repository surfaces as MsgDuplicate too, so the user sees the
// same error whichever side of the race they land on.
const (
	MsgDuplicate = "You already have a booking at this date and time"
	MsgSlotFull  = "This time slot is full, please choose another time"
)

// CheckAvailability runs the duplicate and per-slot capacity checks against
// the store.  Both checks run independently and both failures are reported.
// A store error makes the corresponding check a no-op: the pre-check is an
// advisory courtesy, the unique key on (phone, date, time) is what actually
// closes the race window, so a failed count must not block the submission.
func CheckAvailability(ctx context.Context, c Counter, phoneNorm, date, tm string, maxPerSlot int) []string {
	var errs []string

	if n, err := c.CountByPhoneDateTime(ctx, phoneNorm, date, tm); err != nil {
		log.Printf("booking: duplicate pre-check failed: %v", err)
	} else if n > 0 {
		errs = append(errs, MsgDuplicate)
	}

	if maxPerSlot > 0 {
		if n, err := c.CountByDateTime(ctx, date, tm); err != nil {
			log.Printf("booking: capacity pre-check failed: %v", err)
		} else if n >= maxPerSlot {
			errs = append(errs, MsgSlotFull)
		}
	}
	return errs
}
