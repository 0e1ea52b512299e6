package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/timeslot"
)

// Slots handles GET /v1/slots?date=YYYY-MM-DD and returns the selectable
// times for the picker.  Omitting the date means the earliest bookable date.
// A date before the minimum bookable one returns an empty list with the
// cutoff notice rather than an error, matching what the form shows.
func (h *BookingHandler) Slots(c echo.Context) error {
	now := h.now()
	sched := h.Rules.Schedule

	date := c.QueryParam("date")
	if date == "" {
		date = sched.MinBookableDate(now)
	}
	if _, err := timeslot.ParseDate(date, sched.Loc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	resp := echo.Map{
		"date":     date,
		"step_min": sched.StepMin,
		"slots":    []string{},
	}
	if date < sched.MinBookableDate(now) {
		resp["notice"] = h.Rules.CutoffNotice
		return c.JSON(http.StatusOK, resp)
	}
	if slots := sched.Slots(date, now); slots != nil {
		resp["slots"] = slots
	}
	return c.JSON(http.StatusOK, resp)
}

// ShopInfo handles GET /v1/shop with everything the landing view needs:
// identity, opening hours and the current cutoff state.
func (h *BookingHandler) ShopInfo(c echo.Context) error {
	now := h.now()
	sched := h.Rules.Schedule
	return c.JSON(http.StatusOK, echo.Map{
		"name":          h.Shop.Name,
		"address":       h.Shop.Address,
		"open":          sched.Open,
		"close":         sched.Close,
		"step_min":      sched.StepMin,
		"cutoff":        sched.Cutoff,
		"cutoff_passed": sched.CutoffPassed(now),
		"today":         sched.Today(now),
		"min_date":      sched.MinBookableDate(now),
		"min_party":     h.Rules.MinParty,
		"max_party":     h.Rules.MaxParty,
	})
}
