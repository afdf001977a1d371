package handler // handler defines http handlers

import (
	"errors"   // errors provides sentinel values used in getUserID
	"log/slog" // slog records internal failures
	"net/http" // net/http provides status codes

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/conference-room-booking/internal/booking"
	"github.com/iliyamo/conference-room-booking/internal/middleware"
)

var errNoUser = errors.New("invalid user_id in context")

// getUserID returns the caller resolved by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return 0, errNoUser
}

// statusFor maps every engine failure kind to its HTTP status.  The
// switch is exhaustive: a kind added without a case here falls into the
// default and is served as 500, never as a success.
func statusFor(k booking.Kind) int {
	switch k {
	case booking.KindInvalidInput:
		return http.StatusBadRequest
	case booking.KindAuthRequired, booking.KindNotEnrolled:
		return http.StatusUnauthorized
	case booking.KindTicketIneligible, booking.KindRoomFull:
		return http.StatusForbidden
	case booking.KindNoBookingForUser, booking.KindRoomNotFound:
		return http.StatusNotFound
	case booking.KindAlreadyBooked:
		return http.StatusConflict
	case booking.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeBookingError renders err as {"error": kind}.  Internal failures
// are logged with the request id and never expose their cause.
func writeBookingError(c echo.Context, userID uint64, err error) error {
	kind := booking.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		slog.Error("booking request failed",
			"err", err,
			"user_id", userID,
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return c.JSON(status, echo.Map{"error": booking.KindInternal.String()})
	}
	return c.JSON(status, echo.Map{"error": kind.String()})
}
