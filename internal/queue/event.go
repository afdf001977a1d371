// Package queue defines the booking events exchanged over RabbitMQ and the
// consumer that turns them into an audit log.
package queue

import (
	"fmt"
	"time"
)

// Broker topology.  Events go to a durable topic exchange keyed by event
// name; the audit consumer binds its own durable queue to every key.
const (
	Exchange   = "booking"
	AuditQueue = "booking.audit"

	EventBookingCreated = "booking.created"
	EventBookingChanged = "booking.changed"
)

// BookingEvent is published after a booking write commits.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type BookingEvent struct {
	Event          string `json:"event"`
	BookingID      uint64 `json:"booking_id"`
	UserID         uint64 `json:"user_id"`
	RoomID         uint64 `json:"room_id"`
	PreviousRoomID uint64 `json:"previous_room_id,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

// NewCreatedEvent describes a first booking.
func NewCreatedEvent(bookingID, userID, roomID uint64, at time.Time) BookingEvent {
	return BookingEvent{
		Event:      EventBookingCreated,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}

// NewChangedEvent describes a move from one room to another.
func NewChangedEvent(bookingID, userID, fromRoomID, toRoomID uint64, at time.Time) BookingEvent {
	return BookingEvent{
		Event:          EventBookingChanged,
		BookingID:      bookingID,
		UserID:         userID,
		RoomID:         toRoomID,
		PreviousRoomID: fromRoomID,
		OccurredAt:     at.UTC().Format(time.RFC3339),
	}
}

// LogLine renders the event as one line of logs/booking.log.
func (e BookingEvent) LogLine() string {
	switch e.Event {
	case EventBookingChanged:
		return fmt.Sprintf("[%s] Booking changed | booking_id=%d | user_id=%d | from_room=%d | to_room=%d\n",
			e.OccurredAt, e.BookingID, e.UserID, e.PreviousRoomID, e.RoomID)
	default:
		return fmt.Sprintf("[%s] Booking created | booking_id=%d | user_id=%d | room_id=%d\n",
			e.OccurredAt, e.BookingID, e.UserID, e.RoomID)
	}
}
