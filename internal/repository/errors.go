// Package repository defines error types that are reused across the
// storage layer. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error codes.
package repository

import "errors"

// ErrDuplicateBooking is returned when an insert trips the unique key on
// (phone, booking_date, booking_time). The pre-insert duplicate check can
// lose a race against a concurrent submission, so this is the authoritative
// signal; handlers should surface it with the same message as the
// pre-check and an HTTP 409 response.
var ErrDuplicateBooking = errors.New("duplicate booking")
