package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-room-booking/internal/booking"
	"github.com/iliyamo/conference-room-booking/internal/model"
)

// fakeBookings records the raw arguments it receives and answers with
// whatever the test configured.
type fakeBookings struct {
	booking *model.Booking
	err     error

	gotUser      uint64
	gotRoom      string
	gotBookingID string
}

func (f *fakeBookings) GetCurrentBooking(_ context.Context, userID uint64) (*model.Booking, error) {
	f.gotUser = userID
	return f.booking, f.err
}

func (f *fakeBookings) CreateBooking(_ context.Context, userID uint64, rawRoomID string) (*model.Booking, error) {
	f.gotUser, f.gotRoom = userID, rawRoomID
	return f.booking, f.err
}

func (f *fakeBookings) ChangeBooking(_ context.Context, userID uint64, rawRoomID, rawBookingID string) (*model.Booking, error) {
	f.gotUser, f.gotRoom, f.gotBookingID = userID, rawRoomID, rawBookingID
	return f.booking, f.err
}

// asUser stands in for JWTAuth.
func asUser(id uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id != 0 {
				c.Set("user_id", id)
			}
			return next(c)
		}
	}
}

func bookingServer(svc BookingService, userID uint64) *echo.Echo {
	e := echo.New()
	h := NewBookingHandler(svc)
	g := e.Group("/v1/booking", asUser(userID))
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("/:bookingId", h.ChangeBooking)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStatusForEveryKind(t *testing.T) {
	want := map[booking.Kind]int{
		booking.KindInternal:         http.StatusInternalServerError,
		booking.KindInvalidInput:     http.StatusBadRequest,
		booking.KindAuthRequired:     http.StatusUnauthorized,
		booking.KindNotEnrolled:      http.StatusUnauthorized,
		booking.KindTicketIneligible: http.StatusForbidden,
		booking.KindNoBookingForUser: http.StatusNotFound,
		booking.KindRoomNotFound:     http.StatusNotFound,
		booking.KindRoomFull:         http.StatusForbidden,
		booking.KindAlreadyBooked:    http.StatusConflict,
		booking.Kind(99):             http.StatusInternalServerError,
	}
	for k, status := range want {
		if got := statusFor(k); got != status {
			t.Errorf("statusFor(%s) = %d, want %d", k, got, status)
		}
	}
}

func TestBookingErrorsOverHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not enrolled", booking.ErrNotEnrolled, http.StatusUnauthorized, "not_enrolled"},
		{"ticket", booking.ErrTicketIneligible, http.StatusForbidden, "ticket_ineligible"},
		{"room full", booking.ErrRoomFull, http.StatusForbidden, "room_full"},
		{"room missing", booking.ErrRoomNotFound, http.StatusNotFound, "room_not_found"},
		{"already booked", booking.ErrAlreadyBooked, http.StatusConflict, "already_booked"},
		{"unclassified", errors.New("boom: secret detail"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(bookingServer(&fakeBookings{err: tc.err}, 7), http.MethodPost, "/v1/booking", `{"roomId": 1}`)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body %q: %v", rec.Body.String(), err)
			}
			if body["error"] != tc.body {
				t.Fatalf("error = %q, want %q", body["error"], tc.body)
			}
		})
	}
}

func TestGetBookingShape(t *testing.T) {
	svc := &fakeBookings{booking: &model.Booking{
		ID: 5, UserID: 7, RoomID: 3,
		Room: &model.Room{ID: 3, Name: "101", Capacity: 2, HotelID: 1},
	}}
	rec := do(bookingServer(svc, 7), http.MethodGet, "/v1/booking", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		ID   uint64 `json:"id"`
		Room struct {
			ID       uint64 `json:"id"`
			Capacity int    `json:"capacity"`
			HotelID  uint64 `json:"hotelId"`
		} `json:"Rooms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != 5 || body.Room.ID != 3 || body.Room.Capacity != 2 || body.Room.HotelID != 1 {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if svc.gotUser != 7 {
		t.Fatalf("user = %d", svc.gotUser)
	}
}

func TestCreateBookingPassesRawRoomID(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"roomId": 42}`, "42"},
		{`{"roomId": "42"}`, "42"},
		{`{"roomId": -1}`, "-1"},
		{`{"roomId": 1.5}`, "1.5"},
		{`{"roomId": "abc"}`, "abc"},
		{`{"roomId": null}`, ""},
		{`{"roomId": true}`, ""},
		{`{}`, ""},
		{`not json`, ""},
	}
	for _, tc := range tests {
		svc := &fakeBookings{booking: &model.Booking{ID: 9}}
		rec := do(bookingServer(svc, 7), http.MethodPost, "/v1/booking", tc.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.body, rec.Code)
		}
		if svc.gotRoom != tc.want {
			t.Errorf("%s: raw room = %q, want %q", tc.body, svc.gotRoom, tc.want)
		}
	}
}

func TestCreateBookingRequiresJSONBody(t *testing.T) {
	svc := &fakeBookings{booking: &model.Booking{ID: 9}}
	e := bookingServer(svc, 7)
	req := httptest.NewRequest(http.MethodPost, "/v1/booking", strings.NewReader(`roomId=42`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotRoom != "" {
		t.Fatalf("raw room = %q, want empty for a non-JSON body", svc.gotRoom)
	}
}

func TestCreateBookingReturnsBookingID(t *testing.T) {
	rec := do(bookingServer(&fakeBookings{booking: &model.Booking{ID: 9}}, 7), http.MethodPost, "/v1/booking", `{"roomId": 1}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"bookingId":9}` {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestChangeBookingPassesPathAndBody(t *testing.T) {
	svc := &fakeBookings{booking: &model.Booking{ID: 5}}
	rec := do(bookingServer(svc, 7), http.MethodPut, "/v1/booking/5", `{"roomId": 8}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"bookingId":5}` {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.gotBookingID != "5" || svc.gotRoom != "8" {
		t.Fatalf("args = %q %q", svc.gotBookingID, svc.gotRoom)
	}
}

func TestBookingWithoutIdentityIsUnauthorized(t *testing.T) {
	svc := &fakeBookings{booking: &model.Booking{ID: 5}}
	rec := do(bookingServer(svc, 0), http.MethodGet, "/v1/booking", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotUser != 0 {
		t.Fatalf("service must not be called without a user")
	}
}
