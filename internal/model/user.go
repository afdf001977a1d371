package model

import "time"

// User represents an application user record as stored in the
// `users` table.  The booking core only ever references a user by ID;
// the remaining columns are used by the sign-up and sign-in endpoints.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Session models an entry in the `sessions` table.  A signed access
// token is only honoured while its session row exists, so signing out
// deletes the row and invalidates the token before it expires.  The
// plain token is not stored; only its SHA‑256 hash.
type Session struct {
	ID        uint64    // sessions.id
	UserID    uint64    // sessions.user_id
	TokenHash string    // sessions.token_hash
	CreatedAt time.Time // sessions.created_at
}
