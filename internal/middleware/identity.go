package middleware

// identity.go holds the context keys JWTAuth writes and the accessors
// handlers and the rate limiter use to read them back.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID    = "user_id"
	ctxTokenHash = "token_hash"
)

// UserID returns the authenticated user's id.  ok is false when the
// request did not pass through JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	switch v := c.Get(ctxUserID).(type) {
	case uint64:
		return v, v != 0
	case string:
		return parseUserID(v)
	case float64:
		if v > 0 {
			return uint64(v), true
		}
	}
	return 0, false
}

// TokenHash returns the hash of the bearer token that authenticated the
// request, or "" when there is none.
func TokenHash(c echo.Context) string {
	s, _ := c.Get(ctxTokenHash).(string)
	return s
}

// userKey renders the caller for rate-limit keys; unauthenticated
// callers share "anon".
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}

func parseUserID(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
