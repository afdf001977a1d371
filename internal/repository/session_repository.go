package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SessionRepo persists sign-in sessions (single 'token_hash' column).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row for the hashed access token.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token_hash) VALUES (?,?)",
		userID, tokenHash)
	return err
}

// UserIDByToken returns the owner of the session with the given token
// hash, or ErrSessionNotFound.
func (r *SessionRepo) UserIDByToken(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSessionNotFound
	}
	return userID, err
}

// DeleteByToken ends a session.
func (r *SessionRepo) DeleteByToken(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE token_hash=?", tokenHash)
	return err
}
