// Package booking is the booking-eligibility engine.  It decides whether
// a user may be assigned to a room, or moved to another one, by running
// the enrollment/ticket gate and the room capacity guard against the
// booking store.  The engine holds no state of its own.
package booking

import (
	"context"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/model"
	"github.com/iliyamo/conference-room-booking/internal/repository"
)

// Engine implements the three booking operations.  Every error it
// returns is an *Error; use KindOf to classify it.
type Engine struct {
	gate   Gate
	store  Store
	notify Notifier
}

// Notifier is told about booking writes after they commit.  It must not
// block for long and cannot fail the operation.
type Notifier interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	BookingChanged(ctx context.Context, previousRoomID uint64, b *model.Booking)
}

// SetNotifier registers n for committed writes.  Call it before serving.
func (e *Engine) SetNotifier(n Notifier) { e.notify = n }

// NewEngine wires the engine to its collaborators.  All must be non-nil.
func NewEngine(enrollments EnrollmentFinder, tickets TicketFinder, store Store) *Engine {
	if enrollments == nil || tickets == nil || store == nil {
		panic("nil collaborator passed to NewEngine")
	}
	return &Engine{
		gate:  Gate{Enrollments: enrollments, Tickets: tickets},
		store: store,
	}
}

// maxAttempts bounds how often a unit the store aborted with
// repository.ErrTxConflict is run.
const maxAttempts = 3

// atomic runs fn through the store, rerunning it when the store aborted
// it to break a deadlock.  Each rerun sees what the winner committed.
func (e *Engine) atomic(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = e.store.Atomic(ctx, fn)
		if !errors.Is(err, repository.ErrTxConflict) {
			return err
		}
	}
	return err
}

// GetCurrentBooking returns the user's booking with its Room populated.
func (e *Engine) GetCurrentBooking(ctx context.Context, userID uint64) (*model.Booking, error) {
	const op = "booking.GetCurrentBooking"
	if err := e.gate.Check(ctx, userID); err != nil {
		return nil, err
	}
	b, err := e.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, fail(op, KindNoBookingForUser, err)
		}
		return nil, internal(op, err)
	}
	return b, nil
}

// CreateBooking assigns the user to rawRoomID.  The capacity check and
// the insert run in one atomic unit with the room locked, so two
// concurrent requests can never both take the last slot.  A user who
// already holds a booking gets KindAlreadyBooked; the check runs after
// the capacity guard so a full room still reports KindRoomFull.
func (e *Engine) CreateBooking(ctx context.Context, userID uint64, rawRoomID string) (*model.Booking, error) {
	const op = "booking.CreateBooking"
	roomID, ok := ParseID(rawRoomID)
	if !ok {
		return nil, fail(op, KindInvalidInput, errors.New("roomId must be a positive integer"))
	}
	if err := e.gate.Check(ctx, userID); err != nil {
		return nil, err
	}

	var created *model.Booking
	err := e.atomic(ctx, func(ctx context.Context, tx StoreTx) error {
		if _, err := (CapacityGuard{Rooms: tx}).Check(ctx, roomID); err != nil {
			return err
		}
		switch _, err := tx.FindByUser(ctx, userID); {
		case err == nil:
			return fail(op, KindAlreadyBooked, nil)
		case !errors.Is(err, repository.ErrBookingNotFound):
			return internal(op, err)
		}
		b, err := tx.Insert(ctx, userID, roomID)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateBooking) {
				return fail(op, KindAlreadyBooked, err)
			}
			return internal(op, err)
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, internal(op, err)
	}
	if e.notify != nil {
		e.notify.BookingCreated(ctx, created)
	}
	return created, nil
}

// ChangeBooking moves the user's booking to rawRoomID.  rawBookingID
// must name the caller's own booking; any other id is reported as
// KindNoBookingForUser and nothing is written.  The booking keeps its id.
func (e *Engine) ChangeBooking(ctx context.Context, userID uint64, rawRoomID, rawBookingID string) (*model.Booking, error) {
	const op = "booking.ChangeBooking"
	bookingID, ok := ParseID(rawBookingID)
	if !ok {
		return nil, fail(op, KindInvalidInput, errors.New("bookingId must be a positive integer"))
	}
	roomID, ok := ParseID(rawRoomID)
	if !ok {
		return nil, fail(op, KindInvalidInput, errors.New("roomId must be a positive integer"))
	}
	if err := e.gate.Check(ctx, userID); err != nil {
		return nil, err
	}

	var (
		updated  *model.Booking
		fromRoom uint64
	)
	err := e.atomic(ctx, func(ctx context.Context, tx StoreTx) error {
		current, err := tx.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return fail(op, KindNoBookingForUser, err)
			}
			return internal(op, err)
		}
		if _, err := (CapacityGuard{Rooms: tx}).Check(ctx, roomID); err != nil {
			return err
		}
		if current.ID != bookingID {
			return fail(op, KindNoBookingForUser, errors.New("bookingId does not match the caller's booking"))
		}
		b, err := tx.UpdateRoom(ctx, current.ID, roomID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return fail(op, KindNoBookingForUser, err)
			}
			return internal(op, err)
		}
		updated, fromRoom = b, current.RoomID
		return nil
	})
	if err != nil {
		return nil, internal(op, err)
	}
	if e.notify != nil {
		e.notify.BookingChanged(ctx, fromRoom, updated)
	}
	return updated, nil
}
