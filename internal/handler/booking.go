package handler

import (
	"bytes"         // bytes trims raw JSON values
	"context"       // context for service calls
	"encoding/json" // json unquotes string ids
	"net/http"      // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/conference-room-booking/internal/booking"
	"github.com/iliyamo/conference-room-booking/internal/model"
)

// BookingService is the booking engine as seen by HTTP.  *booking.Engine
// satisfies it.
type BookingService interface {
	GetCurrentBooking(ctx context.Context, userID uint64) (*model.Booking, error)
	CreateBooking(ctx context.Context, userID uint64, rawRoomID string) (*model.Booking, error)
	ChangeBooking(ctx context.Context, userID uint64, rawRoomID, rawBookingID string) (*model.Booking, error)
}

// BookingHandler serves /v1/booking.  All methods assume JWTAuth ran
// first; the engine performs every eligibility and capacity check.
type BookingHandler struct {
	Bookings BookingService
}

// NewBookingHandler panics if svc is nil.
func NewBookingHandler(svc BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: svc}
}

// bookingView is the GET /v1/booking body: the booking id and its room,
// which clients read under "Rooms".
type bookingView struct {
	ID   uint64      `json:"id"`
	Room *model.Room `json:"Rooms"`
}

// roomRequest carries roomId undecoded so that numbers and numeric
// strings both reach the engine's own validation.
type roomRequest struct {
	RoomID json.RawMessage `json:"roomId"`
}

// rawID turns a JSON scalar into the text the engine parses.  Strings
// are unquoted, numbers kept verbatim, anything else becomes "" which
// the engine rejects as invalid input.
func rawID(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	}
	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		return string(v)
	}
	return ""
}

// bindRoomID binds the body.  A malformed body or a non-JSON content
// type yields "" so that the engine reports invalid input the same way
// as a missing roomId.
func bindRoomID(c echo.Context) string {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return rawID(req.RoomID)
}

// GetBooking handles GET /v1/booking.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeBookingError(c, 0, booking.ErrAuthRequired)
	}
	b, err := h.Bookings.GetCurrentBooking(c.Request().Context(), userID)
	if err != nil {
		return writeBookingError(c, userID, err)
	}
	return c.JSON(http.StatusOK, bookingView{ID: b.ID, Room: b.Room})
}

// CreateBooking handles POST /v1/booking with body {"roomId": n}.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeBookingError(c, 0, booking.ErrAuthRequired)
	}
	b, err := h.Bookings.CreateBooking(c.Request().Context(), userID, bindRoomID(c))
	if err != nil {
		return writeBookingError(c, userID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookingId": b.ID})
}

// ChangeBooking handles PUT /v1/booking/:bookingId with body {"roomId": n}.
func (h *BookingHandler) ChangeBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeBookingError(c, 0, booking.ErrAuthRequired)
	}
	b, err := h.Bookings.ChangeBooking(c.Request().Context(), userID, bindRoomID(c), c.Param("bookingId"))
	if err != nil {
		return writeBookingError(c, userID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookingId": b.ID})
}
