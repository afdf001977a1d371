package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/conference-room-booking/internal/model"
)

// BookingRepo owns the bookings table.  Reads outside a transaction go
// through FindByUser; every write goes through Atomic so that the
// capacity check and the write it guards share one transaction.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const bookingWithRoomQuery = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
                      r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
               FROM bookings b
               JOIN rooms r ON r.id = b.room_id
               WHERE b.user_id = ?
               LIMIT 1`

// findBookingByUser with lock set locks the booking row only.  Room rows
// are locked by FindRoom alone so every transaction takes them in the
// same way.
func findBookingByUser(ctx context.Context, q queryRower, userID uint64, lock bool) (*model.Booking, error) {
	query := bookingWithRoomQuery
	if lock {
		query += ` FOR UPDATE OF b`
	}
	var (
		b  model.Booking
		rm model.Room
	)
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Room = &rm
	return &b, nil
}

// FindByUser returns the user's booking with its room populated, or
// ErrBookingNotFound.
func (r *BookingRepo) FindByUser(ctx context.Context, userID uint64) (*model.Booking, error) {
	return findBookingByUser(ctx, r.db, userID, false)
}

// Atomic runs fn inside a transaction.  The transaction commits when fn
// returns nil and rolls back otherwise, so a failed check never leaves
// a partially written booking behind.  A deadlock victim is reported as
// ErrTxConflict wrapping the driver error.
func (r *BookingRepo) Atomic(ctx context.Context, fn func(ctx context.Context, tx *BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(ctx, &BookingTx{tx: tx}); err != nil {
		return asConflict(err)
	}
	if err := tx.Commit(); err != nil {
		return asConflict(fmt.Errorf("commit booking tx: %w", err))
	}
	committed = true
	return nil
}

func asConflict(err error) error {
	if isDeadlock(err) {
		return fmt.Errorf("%w: %w", ErrTxConflict, err)
	}
	return err
}

// BookingTx is the transactional view handed to Atomic callbacks.  Its
// reads take row locks (SELECT ... FOR UPDATE) so that concurrent
// writers to the same room or user queue behind each other until
// commit.
type BookingTx struct {
	tx *sql.Tx
}

// FindRoom locks the room row and counts its current occupants.  The
// lock on the room serialises every booking write that targets it, so
// the count stays valid until the transaction ends.
func (t *BookingTx) FindRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
	var rm model.Room
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ? FOR UPDATE`,
		roomID,
	).Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID,
	).Scan(&rm.Occupants); err != nil {
		return nil, err
	}
	return &rm, nil
}

// FindByUser is FindByUser with the booking row locked.  The joined
// room row is read without a lock.
func (t *BookingTx) FindByUser(ctx context.Context, userID uint64) (*model.Booking, error) {
	return findBookingByUser(ctx, t.tx, userID, true)
}

// Insert creates a booking and reads it back to populate timestamps.
// A unique key violation on user_id is reported as ErrDuplicateBooking.
func (t *BookingTx) Insert(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	res, err := t.tx.ExecContext(ctx, `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return t.byID(ctx, uint64(id))
}

// UpdateRoom repoints an existing booking to another room.  The id is
// preserved.  ErrBookingNotFound is returned when no booking has the id.
func (t *BookingTx) UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	// RowsAffected is not used: MySQL reports 0 when the room is unchanged.
	if _, err := t.tx.ExecContext(ctx,
		`UPDATE bookings SET room_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, roomID, bookingID,
	); err != nil {
		return nil, err
	}
	return t.byID(ctx, bookingID)
}

func (t *BookingTx) byID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`, id,
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}
