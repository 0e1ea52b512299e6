// Package booking holds the core decision logic of the service: field
// validation of a submitted booking, the same-day cutoff rules, and the
// advisory duplicate/capacity checks.  The package is pure with respect to
// time (the caller passes "now") and talks to storage only through the Store
// interface, so every rule is unit-testable without a database.
package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/restaurant-table-booking/internal/phone"
	"github.com/iliyamo/restaurant-table-booking/internal/timeslot"
)

// Request carries one submitted booking form.  Field values are kept exactly
// as submitted; validation never mutates them so they can be echoed back for
// re-display.
type Request struct {
	FullName    string `json:"full_name" form:"full_name"`
	Phone       string `json:"phone" form:"phone"`
	Email       string `json:"email" form:"email"`
	BookingDate string `json:"booking_date" form:"booking_date"`
	BookingTime string `json:"booking_time" form:"booking_time"`
	PartySize   int    `json:"party_size" form:"party_size"`
	Notes       string `json:"notes" form:"notes"`
}

// Normalized is the canonical record produced by a successful validation
// pass.  Phone is the canonical number, BookingDate may have been advanced
// one day by the cutoff rule, and BookingTime carries seconds to match the
// stored TIME column.  Empty Email/Notes mean "not provided".
type Normalized struct {
	FullName    string
	Phone       string
	Email       string
	BookingDate string
	BookingTime string
	PartySize   int
	Notes       string
}

// Rules bundles the configured business rules consumed by Validate.
type Rules struct {
	Schedule     timeslot.Schedule
	MinNameLen   int
	MinParty     int
	MaxParty     int
	MaxPerSlot   int // 0 = unlimited
	CutoffNotice string
}

// Outcome is the result of one validation pass.  Exactly one of Booking or a
// non-empty Errors list is set.  Input echoes the original request for
// re-display; Notices carries non-fatal messages such as the cutoff date
// advance.
type Outcome struct {
	Booking *Normalized `json:"booking,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Notices []string    `json:"notices,omitempty"`
	Input   Request     `json:"input"`
}

// Fixed validation messages.  Messages that embed configured values are
// rendered inline by Validate.
const (
	MsgInvalidPhone = "Please enter a valid phone number"
	MsgInvalidEmail = "Invalid email address"
	MsgInvalidDate  = "Invalid date format"
	MsgTimePassed   = "The selected time has already passed, please choose a later slot"
)

// Validate runs every field check against the request and collects all
// failures.  Checks are not short-circuited except where a later check needs
// an earlier result (the same-day time check needs a parsed date).  When the
// cutoff has passed and the submitted date is today, the date is silently
// advanced to tomorrow and the cutoff notice is attached; that is a notice,
// not an error, and the booking proceeds on the adjusted date.
func Validate(req Request, now time.Time, r Rules) Outcome {
	out := Outcome{Input: req}
	sched := r.Schedule

	fullName := strings.TrimSpace(req.FullName)
	if utf8.RuneCountInString(fullName) < r.MinNameLen {
		out.Errors = append(out.Errors, fmt.Sprintf("Please enter your full name (at least %d characters)", r.MinNameLen))
	}

	phoneNorm := phone.Normalize(req.Phone)
	if !phone.IsValid(phoneNorm) {
		out.Errors = append(out.Errors, MsgInvalidPhone)
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !validEmail(email) {
		out.Errors = append(out.Errors, MsgInvalidEmail)
	}

	if req.PartySize < r.MinParty || req.PartySize > r.MaxParty {
		out.Errors = append(out.Errors, fmt.Sprintf("Party size must be between %d and %d", r.MinParty, r.MaxParty))
	}

	today := sched.Today(now)
	cutoffPassed := sched.CutoffPassed(now)
	minDate := sched.MinBookableDate(now)

	bookingDate := strings.TrimSpace(req.BookingDate)
	dateOK := false
	if _, err := timeslot.ParseDate(bookingDate, sched.Loc); err != nil {
		out.Errors = append(out.Errors, MsgInvalidDate)
	} else {
		dateOK = true
		if cutoffPassed && bookingDate == today {
			// Deliberate UX choice carried over from the original system:
			// after the cutoff a same-day request rolls to tomorrow instead
			// of being rejected.
			d, _ := timeslot.ParseDate(bookingDate, sched.Loc)
			bookingDate = d.AddDate(0, 0, 1).Format(timeslot.DateLayout)
			out.Notices = append(out.Notices, r.CutoffNotice)
		}
		if bookingDate < minDate {
			out.Errors = append(out.Errors, r.CutoffNotice)
		}
	}

	bookingTime := strings.TrimSpace(req.BookingTime)
	if !sched.InRangeAndStep(bookingTime) {
		out.Errors = append(out.Errors, fmt.Sprintf(
			"Please choose a time between %s and before %s (every %d minutes)",
			sched.Open, sched.Close, sched.StepMin))
	} else if dateOK && !cutoffPassed && bookingDate == today {
		// A same-day booking may not target a slot that has already started.
		tMin, _ := timeslot.ParseClock(bookingTime)
		openMin, _ := timeslot.ParseClock(sched.Open)
		next := timeslot.CeilToStep(sched.NowMinutes(now), sched.StepMin)
		minAllowed := openMin
		if next > minAllowed {
			minAllowed = next
		}
		if tMin < minAllowed {
			out.Errors = append(out.Errors, MsgTimePassed)
		}
	}

	if len(out.Errors) > 0 {
		return out
	}

	out.Booking = &Normalized{
		FullName:    fullName,
		Phone:       phoneNorm,
		Email:       email,
		BookingDate: bookingDate,
		BookingTime: bookingTime + ":00",
		PartySize:   req.PartySize,
		Notes:       strings.TrimSpace(req.Notes),
	}
	return out
}

// validEmail accepts a bare RFC 5322 address without a display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
