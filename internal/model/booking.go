package model

import "time"

// Booking binds one user to one room.  A user has at most one booking;
// changing rooms repoints RoomID in place and keeps ID stable.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who holds the booking (unique).
//  RoomID    – room currently assigned.
//  Room      – the assigned room, populated by lookups that join rooms.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	Room      *Room
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
