package handler // declare the package name; contains HTTP handlers

import (
	"context"      // bounded ping
	"database/sql" // database handle
	"net/http"     // net/http provides status codes and response helpers
	"time"         // ping timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

// Health is used by load balancers and monitoring systems.  It answers
// "ok" with 200 while the database responds to a ping within a second,
// and 503 otherwise.  A nil db skips the check.
func Health(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return c.String(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	}
}
