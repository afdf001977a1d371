package booking

import (
	"context"

	"github.com/iliyamo/conference-room-booking/internal/model"
	"github.com/iliyamo/conference-room-booking/internal/repository"
)

// EnrollmentFinder looks up a user's enrollment.  It returns
// repository.ErrEnrollmentNotFound when the user has none.
type EnrollmentFinder interface {
	FindWithAddressByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

// TicketFinder looks up a user's ticket with its type.  It returns
// repository.ErrTicketNotFound when the user has none.
type TicketFinder interface {
	FindByUserID(ctx context.Context, userID uint64) (*model.Ticket, error)
}

// RoomFinder looks up a room with its live occupant count.  It returns
// repository.ErrRoomNotFound for an unknown id.
type RoomFinder interface {
	FindRoom(ctx context.Context, roomID uint64) (*model.Room, error)
}

// StoreTx is the view of the booking store inside one atomic unit.
// FindRoom and FindByUser are expected to lock what they read until the
// unit ends.
type StoreTx interface {
	RoomFinder
	FindByUser(ctx context.Context, userID uint64) (*model.Booking, error)
	Insert(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
}

// Store is the durable user → room mapping.  FindByUser returns
// repository.ErrBookingNotFound when the user has no booking.  Atomic
// runs fn as one unit: all of it takes effect or none of it does.
type Store interface {
	FindByUser(ctx context.Context, userID uint64) (*model.Booking, error)
	Atomic(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error
}

// SQLStore adapts repository.BookingRepo to Store.
type SQLStore struct {
	Repo *repository.BookingRepo
}

func (s SQLStore) FindByUser(ctx context.Context, userID uint64) (*model.Booking, error) {
	return s.Repo.FindByUser(ctx, userID)
}

func (s SQLStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error {
	return s.Repo.Atomic(ctx, func(ctx context.Context, tx *repository.BookingTx) error {
		return fn(ctx, tx)
	})
}
