package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/conference-room-booking/internal/handler" // handlers that implement each endpoint
)

// RegisterRoutes registers routes that do not require authentication and
// carry no business logic.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers sign-up and sign-in under /v1/auth.  Sign-out
// ends the caller's own session, so it runs behind jwtAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtAuth echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/sign-up", a.SignUp)
	g.POST("/sign-in", a.SignIn)
	g.POST("/sign-out", a.SignOut, jwtAuth)
}

// RegisterRooms registers the public availability endpoints.  cache
// fronts both; pass a no-op middleware to disable it.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/hotels/:hotelId/rooms", h.ListHotelRooms, cache)
	e.GET("/v1/rooms/:id", h.GetRoom, cache)
}

// RegisterBooking registers /v1/booking.  jwtAuth runs first so that the
// rate limiter can key buckets by user.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtAuth, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/booking", jwtAuth, limiter)
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("/:bookingId", h.ChangeBooking)
}
