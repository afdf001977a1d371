package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // sql.ErrNoRows for unknown emails
	"errors"       // errors.Is for repository sentinels
	"log/slog"     // slog records unexpected failures
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/conference-room-booking/internal/config"     // app configuration
	"github.com/iliyamo/conference-room-booking/internal/middleware" // token hash of the current request
	"github.com/iliyamo/conference-room-booking/internal/model"      // user rows
	"github.com/iliyamo/conference-room-booking/internal/repository" // repository sentinels
	"github.com/iliyamo/conference-room-booking/internal/utils"      // hashing, token issuing
)

// UserStore is satisfied by *repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// SessionStore is satisfied by *repository.SessionRepo.
type SessionStore interface {
	Create(ctx context.Context, userID uint64, tokenHash string) error
	DeleteByToken(ctx context.Context, tokenHash string) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions SessionStore
}

func NewAuthHandler(cfg config.Config, u UserStore, s SessionStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

type signInResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func (r *credentialsReq) normalize() bool {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r.Email != "" && r.Password != ""
}

// SignUp creates a user.  It does not sign in; clients call SignIn next.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.normalize() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, utils.ErrPasswordTooShort):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		slog.Error("sign-up failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userPart{ID: uid, Email: req.Email})
}

// SignIn verifies credentials, opens a session and returns its token.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.normalize() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		slog.Error("sign-in lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	if err := h.Sessions.Create(ctx, u.ID, utils.HashToken(access.Token)); err != nil {
		slog.Error("save session failed", "user_id", u.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
	}
	return c.JSON(http.StatusOK, signInResp{
		User:    userPart{ID: u.ID, Email: u.Email},
		Token:   access.Token,
		Expires: access.Exp,
	})
}

// SignOut ends the session of the token that authenticated the request
// (protected by JWTAuth).
func (h *AuthHandler) SignOut(c echo.Context) error {
	hash := middleware.TokenHash(c)
	if hash == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Sessions.DeleteByToken(ctx, hash); err != nil {
		slog.Error("sign-out failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
