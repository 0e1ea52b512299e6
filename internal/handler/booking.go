package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/notifier"
	"github.com/iliyamo/restaurant-table-booking/internal/phone"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// lookupLimit caps how many bookings the phone lookup returns.
const lookupLimit = 20

// BookingHandler serves the booking form endpoints: submission, lookup by
// phone, the slot picker and shop info.  One submission is one synchronous
// request-response pass through validate, availability pre-check, insert,
// event publish and best-effort email; the handler holds no mutable state,
// so it is safe for concurrent requests.
type BookingHandler struct {
	Store    booking.Store
	Rules    booking.Rules
	Shop     config.ShopConfig
	Notifier notifier.Notifier // nil when SMTP is not configured

	// Publish pushes the booking.created event; nil disables publishing.
	// Failures are ignored, the event stream is observability only.
	Publish func(ctx context.Context, ev queue.BookingCreatedEvent) error

	// Debug echoes insert error detail to the client (local env only).
	Debug bool

	// now is stubbed in tests.
	now func() time.Time
}

// NewBookingHandler constructs a BookingHandler.  Store and rules must be
// set; notifier and publish hook may be nil.
func NewBookingHandler(store booking.Store, rules booking.Rules, shop config.ShopConfig, n notifier.Notifier, debug bool) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{
		Store:    store,
		Rules:    rules,
		Shop:     shop,
		Notifier: n,
		Debug:    debug,
		now:      time.Now,
	}
}

// Create handles POST /v1/bookings.  The full error list plus the original
// input is returned on any validation failure so the form can re-display;
// a success response carries the stored booking and any notices (cutoff
// date advance, email delivery outcome).
func (h *BookingHandler) Create(c echo.Context) error {
	var req booking.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	now := h.now()
	out := booking.Validate(req, now, h.Rules)

	ctx := c.Request().Context()
	conflict := false
	if len(out.Errors) == 0 {
		avail := booking.CheckAvailability(ctx, h.Store,
			out.Booking.Phone, out.Booking.BookingDate, out.Booking.BookingTime, h.Rules.MaxPerSlot)
		if len(avail) > 0 {
			out.Errors = append(out.Errors, avail...)
			out.Booking = nil
			conflict = true
		}
	}
	if len(out.Errors) > 0 {
		status := http.StatusBadRequest
		if conflict {
			status = http.StatusConflict
		}
		return c.JSON(status, echo.Map{
			"errors":  out.Errors,
			"notices": out.Notices,
			"input":   out.Input,
		})
	}

	stored, err := h.Store.Insert(ctx, out.Booking)
	if err != nil {
		// The unique key can fire even though the pre-check passed: two
		// submissions raced and the other one won.  Same message as the
		// pre-check either way.
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return c.JSON(http.StatusConflict, echo.Map{
				"errors":  []string{booking.MsgDuplicate},
				"notices": out.Notices,
				"input":   out.Input,
			})
		}
		log.Printf("booking: insert failed: %v", err)
		msg := "Could not save your booking, please try again"
		if h.Debug {
			msg += ": " + err.Error()
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"errors":  []string{msg},
			"notices": out.Notices,
			"input":   out.Input,
		})
	}

	notices := append([]string{}, out.Notices...)
	notices = append(notices, h.notify(ctx, stored))

	if h.Publish != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:   stored.ID,
			Ref:         stored.Ref,
			FullName:    stored.FullName,
			Phone:       stored.Phone,
			BookingDate: stored.BookingDate,
			BookingTime: stored.BookingTime,
			PartySize:   stored.PartySize,
			EmailSent:   stored.Email != nil && h.Notifier != nil,
			CreatedAt:   stored.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Publish(context.Background(), ev) }()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": stored,
		"notices": notices,
	})
}

// notify sends the confirmation email and returns the notice describing the
// outcome.  Guest email present: confirm to the guest, shop inbox BCC'd.
// No guest email: alert the shop inbox instead.  Never fails the booking.
func (h *BookingHandler) notify(ctx context.Context, b *model.Booking) string {
	if h.Notifier == nil {
		return "Booking saved (email is not configured, no confirmation sent)"
	}
	if b.Email != nil && *b.Email != "" {
		if err := h.Notifier.Send(ctx, notifier.BuildConfirmation(b, h.Shop)); err != nil {
			log.Printf("booking: confirmation email failed: %v", err)
			return "Booking saved, but the confirmation email failed"
		}
		return "Confirmation email sent"
	}
	if h.Shop.NotifyEmail == "" {
		return "Booking saved"
	}
	if err := h.Notifier.Send(ctx, notifier.BuildShopAlert(b, h.Shop)); err != nil {
		log.Printf("booking: shop alert email failed: %v", err)
		return "Booking saved, but notifying the shop failed"
	}
	return "Booking saved, the shop has been notified"
}

// Lookup handles GET /v1/bookings?phone=…  The phone is normalized and
// expanded into candidate forms so bookings stored under any historical
// convention are found.  Most recent first, capped at lookupLimit.
func (h *BookingHandler) Lookup(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("phone"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}
	norm := phone.Normalize(raw)
	if !phone.IsValid(norm) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number"})
	}

	list, err := h.Store.FindByPhones(c.Request().Context(), phone.Candidates(raw), lookupLimit)
	if err != nil {
		log.Printf("booking: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if list == nil {
		list = []model.Booking{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(list),
		"bookings": list,
	})
}
