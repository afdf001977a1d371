package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"  // context for the session lookup
	"errors"   // errors.Is for the session sentinel
	"log/slog" // structured logging of lookup failures
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/conference-room-booking/internal/repository"
	"github.com/iliyamo/conference-room-booking/internal/utils"
)

// SessionLookup resolves the owner of an active session by the hash of
// its access token.  *repository.SessionRepo satisfies it.
type SessionLookup interface {
	UserIDByToken(ctx context.Context, tokenHash string) (uint64, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and requires a live session for it.  A well-signed token whose session
// was ended by sign-out is rejected.  On success the session owner is
// stored under "user_id" (uint64) and the token hash under "token_hash"
// so that handlers can read them with UserID and TokenHash.
func JWTAuth(secret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return unauthorized(c, "missing bearer token")
			}

			// Only HMAC signatures made with our secret are accepted.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return unauthorized(c, "invalid token")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}
			sub, ok := subject(claims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}

			// The session row is authoritative: the token must still be
			// registered and must belong to the user it names.
			hash := utils.HashToken(raw)
			owner, err := sessions.UserIDByToken(c.Request().Context(), hash)
			if err != nil {
				if errors.Is(err, repository.ErrSessionNotFound) {
					return unauthorized(c, "session not found")
				}
				slog.Error("session lookup failed", "err", err, "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}
			if owner != sub {
				return unauthorized(c, "session not found")
			}

			c.Set(ctxUserID, owner)
			c.Set(ctxTokenHash, hash)
			return next(c)
		}
	}
}

// subject reads the numeric "sub" claim.  JSON decoding yields float64,
// older tokens may carry the id as a decimal string.
func subject(claims jwt.MapClaims) (uint64, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v <= 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	case string:
		return parseUserID(v)
	}
	return 0, false
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
