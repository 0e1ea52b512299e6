package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/notifier"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/timeslot"
)

// fakeStore keeps bookings in memory and mimics the unique key on
// (phone, date, time).
type fakeStore struct {
	rows     []model.Booking
	insertID uint64

	// hideFromCounts simulates a concurrent insert landing between the
	// pre-check and the write: counts see nothing, the unique key still fires.
	hideFromCounts bool
}

func (f *fakeStore) CountByPhoneDateTime(_ context.Context, phone, date, tm string) (int, error) {
	if f.hideFromCounts {
		return 0, nil
	}
	n := 0
	for _, b := range f.rows {
		if b.Phone == phone && b.BookingDate == date && b.BookingTime == tm {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountByDateTime(_ context.Context, date, tm string) (int, error) {
	if f.hideFromCounts {
		return 0, nil
	}
	n := 0
	for _, b := range f.rows {
		if b.BookingDate == date && b.BookingTime == tm {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Insert(_ context.Context, b *booking.Normalized) (*model.Booking, error) {
	for _, r := range f.rows {
		if r.Phone == b.Phone && r.BookingDate == b.BookingDate && r.BookingTime == b.BookingTime {
			return nil, repository.ErrDuplicateBooking
		}
	}
	f.insertID++
	row := model.Booking{
		ID:          f.insertID,
		Ref:         "ref-1",
		FullName:    b.FullName,
		Phone:       b.Phone,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		PartySize:   b.PartySize,
		CreatedAt:   time.Now().UTC(),
	}
	if b.Email != "" {
		e := b.Email
		row.Email = &e
	}
	if b.Notes != "" {
		n := b.Notes
		row.Notes = &n
	}
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeStore) FindByPhones(_ context.Context, phones []string, limit int) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.rows {
		for _, p := range phones {
			if b.Phone == p {
				out = append(out, b)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []notifier.Message
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, m notifier.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func testHandler(store *fakeStore, n notifier.Notifier) *BookingHandler {
	rules := booking.Rules{
		Schedule: timeslot.Schedule{
			Open: "10:00", Close: "20:00", StepMin: 15, Cutoff: "20:00", Loc: time.UTC,
		},
		MinNameLen: 2, MinParty: 1, MaxParty: 20, MaxPerSlot: 2,
		CutoffNotice: "Same-day booking has closed; your booking was moved to the next day",
	}
	shop := config.ShopConfig{Name: "Seafood Restaurant", NotifyEmail: "shop@example.com"}
	h := NewBookingHandler(store, rules, shop, n, false)
	h.now = func() time.Time {
		return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func postBooking(t *testing.T, h *BookingHandler, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

const validBody = `{"full_name":"Somchai Jaidee","phone":"081-234-5678","email":"somchai@example.com","booking_date":"2025-09-16","booking_time":"18:30","party_size":4}`

func TestCreateBooking(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeNotifier{}
	h := testHandler(store, mailer)

	rec, resp := postBooking(t, h, validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var stored model.Booking
	if err := json.Unmarshal(resp["booking"], &stored); err != nil {
		t.Fatalf("no booking in response: %v", err)
	}
	if stored.Phone != "+66812345678" {
		t.Errorf("stored phone = %q, want canonical", stored.Phone)
	}
	if stored.BookingTime != "18:30:00" {
		t.Errorf("stored time = %q, want 18:30:00", stored.BookingTime)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "somchai@example.com" {
		t.Errorf("confirmation not sent to guest: %+v", mailer.sent)
	}
	if mailer.sent[0].BCC != "shop@example.com" {
		t.Errorf("shop inbox not BCC'd: %+v", mailer.sent[0])
	}
}

func TestCreateValidationErrorsEchoInput(t *testing.T) {
	h := testHandler(&fakeStore{}, nil)
	rec, resp := postBooking(t, h, `{"full_name":"x","phone":"bad","booking_date":"2025-09-16","booking_time":"18:30","party_size":4}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var input booking.Request
	if err := json.Unmarshal(resp["input"], &input); err != nil {
		t.Fatalf("no echoed input: %v", err)
	}
	if input.Phone != "bad" || input.FullName != "x" {
		t.Errorf("input not echoed verbatim: %+v", input)
	}
	var errs []string
	if err := json.Unmarshal(resp["errors"], &errs); err != nil || len(errs) != 2 {
		t.Errorf("errors = %v, want name and phone errors", errs)
	}
}

func TestCreateDuplicateSamePhoneDifferentSpelling(t *testing.T) {
	store := &fakeStore{}
	h := testHandler(store, nil)

	if rec, _ := postBooking(t, h, validBody); rec.Code != http.StatusCreated {
		t.Fatalf("first booking failed: %d", rec.Code)
	}
	// Same person, same slot, different phone spelling: pre-check catches it.
	body := strings.Replace(validBody, "081-234-5678", "+66 81 234 5678", 1)
	rec, resp := postBooking(t, h, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var errs []string
	if err := json.Unmarshal(resp["errors"], &errs); err != nil || len(errs) != 1 || errs[0] != booking.MsgDuplicate {
		t.Fatalf("errors = %v, want duplicate message", errs)
	}
}

func TestCreateRaceLostAtInsert(t *testing.T) {
	// A row appears between the pre-check and the insert: the store's unique
	// key fires and the user sees the same duplicate error.
	store := &fakeStore{}
	h := testHandler(store, nil)
	if rec, _ := postBooking(t, h, validBody); rec.Code != http.StatusCreated {
		t.Fatal("setup booking failed")
	}
	store.hideFromCounts = true
	rec, resp := postBooking(t, h, validBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var errs []string
	_ = json.Unmarshal(resp["errors"], &errs)
	if len(errs) != 1 || errs[0] != booking.MsgDuplicate {
		t.Fatalf("errors = %v, want duplicate message", errs)
	}
}

func TestCreateSlotFull(t *testing.T) {
	store := &fakeStore{}
	h := testHandler(store, nil)
	h.Rules.MaxPerSlot = 1

	if rec, _ := postBooking(t, h, validBody); rec.Code != http.StatusCreated {
		t.Fatal("first booking failed")
	}
	body := strings.Replace(validBody, "081-234-5678", "089-999-9999", 1)
	rec, resp := postBooking(t, h, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var errs []string
	_ = json.Unmarshal(resp["errors"], &errs)
	if len(errs) != 1 || errs[0] != booking.MsgSlotFull {
		t.Fatalf("errors = %v, want slot full", errs)
	}
}

func TestCreateEmailFailureIsSoft(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeNotifier{err: context.DeadlineExceeded}
	h := testHandler(store, mailer)

	rec, resp := postBooking(t, h, validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("email failure rejected the booking: %d", rec.Code)
	}
	var notices []string
	if err := json.Unmarshal(resp["notices"], &notices); err != nil || len(notices) != 1 {
		t.Fatalf("notices = %v", notices)
	}
	if !strings.Contains(notices[0], "email failed") {
		t.Errorf("notice = %q, want soft email-failure notice", notices[0])
	}
}

func TestCreateCutoffAdvanceNotice(t *testing.T) {
	store := &fakeStore{}
	h := testHandler(store, nil)
	h.now = func() time.Time {
		return time.Date(2025, 9, 15, 20, 30, 0, 0, time.UTC) // past cutoff
	}
	body := strings.Replace(validBody, "2025-09-16", "2025-09-15", 1)
	rec, resp := postBooking(t, h, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var stored model.Booking
	_ = json.Unmarshal(resp["booking"], &stored)
	if stored.BookingDate != "2025-09-16" {
		t.Errorf("date = %s, want advanced to tomorrow", stored.BookingDate)
	}
	var notices []string
	_ = json.Unmarshal(resp["notices"], &notices)
	if len(notices) == 0 || !strings.Contains(notices[0], "moved to the next day") {
		t.Errorf("notices = %v, want cutoff notice first", notices)
	}
}

func TestLookup(t *testing.T) {
	store := &fakeStore{}
	h := testHandler(store, nil)
	if rec, _ := postBooking(t, h, validBody); rec.Code != http.StatusCreated {
		t.Fatal("setup booking failed")
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings?phone=0812345678", nil)
	rec := httptest.NewRecorder()
	if err := h.Lookup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Count    int             `json:"count"`
		Bookings []model.Booking `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Count != 1 || len(resp.Bookings) != 1 {
		t.Fatalf("count = %d, want the stored booking found via local spelling", resp.Count)
	}
}

func TestLookupInvalidPhone(t *testing.T) {
	h := testHandler(&fakeStore{}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings?phone=123", nil)
	rec := httptest.NewRecorder()
	if err := h.Lookup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSlots(t *testing.T) {
	h := testHandler(&fakeStore{}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/slots?date=2025-09-15", nil)
	rec := httptest.NewRecorder()
	if err := h.Slots(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Slots returned error: %v", err)
	}
	var resp struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	// now is 12:00 sharp, which is itself a boundary.
	if len(resp.Slots) == 0 || resp.Slots[0] != "12:00" {
		t.Fatalf("slots = %v, want first 12:00", resp.Slots)
	}
}

func TestSlotsPastDateNotice(t *testing.T) {
	h := testHandler(&fakeStore{}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/slots?date=2025-09-14", nil)
	rec := httptest.NewRecorder()
	if err := h.Slots(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Slots returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Slots  []string `json:"slots"`
		Notice string   `json:"notice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Slots) != 0 || resp.Notice == "" {
		t.Fatalf("past date: slots = %v notice = %q, want empty slots with notice", resp.Slots, resp.Notice)
	}
}
