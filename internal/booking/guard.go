package booking

import (
	"context"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/model"
	"github.com/iliyamo/conference-room-booking/internal/repository"
)

// CapacityGuard decides whether a room can take one more occupant.  It
// reads through Rooms on every call; inside an atomic unit Rooms is the
// transaction, so the count it sees is locked until the write.
type CapacityGuard struct {
	Rooms RoomFinder
}

// Check returns the room when it has a free slot.  A room is full when
// its occupant count has reached its capacity; capacity zero is always
// full.
func (g CapacityGuard) Check(ctx context.Context, roomID uint64) (*model.Room, error) {
	const op = "booking.CapacityGuard.Check"
	room, err := g.Rooms.FindRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, fail(op, KindRoomNotFound, err)
		}
		return nil, internal(op, err)
	}
	if room.Full() {
		return nil, fail(op, KindRoomFull, nil)
	}
	return room, nil
}
