// Package timeslot implements the opening-hours grid.  Every rule about when
// a table can be booked is a pure function of four configured values (opening
// time, closing time, slot step in minutes, same-day cutoff) plus the current
// instant, so the same package drives both the server-side authority checks
// and the slot list offered to the client.
package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ErrBadDate is returned by ParseDate for anything that is not a real
// calendar date in YYYY-MM-DD form.
var ErrBadDate = errors.New("invalid date")

// ErrBadClock is returned by ParseClock for anything that is not a valid
// HH:MM clock time.
var ErrBadClock = errors.New("invalid time")

// ParseDate parses a strict YYYY-MM-DD calendar date in the given location.
// The parse must round-trip exactly: "2025-02-30" is rejected rather than
// rolled over into March.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	if d.Format(DateLayout) != s {
		return time.Time{}, ErrBadDate
	}
	return d, nil
}

// ParseClock parses a strict HH:MM clock time into minutes since midnight.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, ErrBadClock
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, ErrBadClock
	}
	return h*60 + m, nil
}

// CeilToStep rounds minutes up to the next multiple of step.  A value already
// on a boundary is unchanged.
func CeilToStep(minutes, step int) int {
	if step <= 0 {
		return minutes
	}
	return ((minutes + step - 1) / step) * step
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Schedule holds the shop's opening-hours grid.  Open and Close are HH:MM,
// Close is exclusive.  StepMin is the slot granularity.  Cutoff is the HH:MM
// time of day after which same-day bookings roll to tomorrow.  Loc is the
// shop's wall-clock timezone; all "today" decisions are made in it.
type Schedule struct {
	Open    string
	Close   string
	StepMin int
	Cutoff  string
	Loc     *time.Location
}

// InRangeAndStep reports whether hm is a bookable slot: a valid clock time
// within [Open, Close) that falls on a step boundary.
func (s Schedule) InRangeAndStep(hm string) bool {
	t, err := ParseClock(hm)
	if err != nil {
		return false
	}
	o, err := ParseClock(s.Open)
	if err != nil {
		return false
	}
	c, err := ParseClock(s.Close)
	if err != nil {
		return false
	}
	if t < o || t >= c {
		return false
	}
	return t%s.StepMin == 0
}

// Today returns now's calendar date in the schedule's timezone.
func (s Schedule) Today(now time.Time) string {
	return now.In(s.loc()).Format(DateLayout)
}

// CutoffPassed reports whether now has reached or passed the same-day cutoff.
func (s Schedule) CutoffPassed(now time.Time) bool {
	cut, err := ParseClock(s.Cutoff)
	if err != nil {
		return false
	}
	n := now.In(s.loc())
	return n.Hour()*60+n.Minute() >= cut
}

// MinBookableDate returns the earliest date a booking may target: today, or
// tomorrow once the cutoff has passed.
func (s Schedule) MinBookableDate(now time.Time) string {
	n := now.In(s.loc())
	if s.CutoffPassed(now) {
		n = n.AddDate(0, 0, 1)
	}
	return n.Format(DateLayout)
}

// NowMinutes returns now's clock time in the schedule's timezone as minutes
// since midnight.
func (s Schedule) NowMinutes(now time.Time) int {
	n := now.In(s.loc())
	return n.Hour()*60 + n.Minute()
}

// Slots enumerates the selectable HH:MM times for the given date.  For any
// future date that is every step boundary in [Open, Close).  For today the
// list starts at the next slot boundary after now, so slots that have already
// started are never offered; once the cutoff has passed today has no slots at
// all.  Dates before the minimum bookable date yield nil.
func (s Schedule) Slots(date string, now time.Time) []string {
	if date < s.MinBookableDate(now) {
		return nil
	}
	o, err := ParseClock(s.Open)
	if err != nil {
		return nil
	}
	c, err := ParseClock(s.Close)
	if err != nil {
		return nil
	}
	start := o
	if date == s.Today(now) {
		next := CeilToStep(s.NowMinutes(now), s.StepMin)
		if next > start {
			start = next
		}
	}
	var out []string
	for m := start; m < c; m += s.StepMin {
		out = append(out, FormatMinutes(m))
	}
	return out
}

func (s Schedule) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.Local
}
