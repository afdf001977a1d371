package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/model"
)

// RoomRepo provides read access to hotels and rooms.  Every room it
// returns carries a live occupant count computed from the bookings
// table in the same statement; counts are never cached here.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomWithOccupantsCols = `r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at,
       (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)`

func scanRoom(sc interface{ Scan(...any) error }, rm *model.Room) error {
	return sc.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt, &rm.Occupants)
}

// FindRoom fetches a room and its occupant count.  It returns
// ErrRoomNotFound when no row matches.
func (r *RoomRepo) FindRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
	q := `SELECT ` + roomWithOccupantsCols + ` FROM rooms r WHERE r.id = ?`
	var rm model.Room
	if err := scanRoom(r.db.QueryRowContext(ctx, q, roomID), &rm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByHotel returns every room of a hotel ordered by id.  A hotel
// with no rooms yields an empty slice; an unknown hotel yields
// ErrHotelNotFound.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) (*model.Hotel, []model.Room, error) {
	var h model.Hotel
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`, hotelID,
	).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrHotelNotFound
		}
		return nil, nil, err
	}

	q := `SELECT ` + roomWithOccupantsCols + ` FROM rooms r WHERE r.hotel_id = ? ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	rooms := []model.Room{}
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &h, rooms, nil
}
