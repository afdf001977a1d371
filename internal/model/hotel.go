package model

import "time"

// Hotel groups rooms available to in-person attendees.
type Hotel struct {
	ID        uint64    `json:"id"`        // hotels.id
	Name      string    `json:"name"`      // hotels.name
	Image     string    `json:"image"`     // hotels.image
	CreatedAt time.Time `json:"createdAt"` // hotels.created_at
	UpdatedAt time.Time `json:"updatedAt"` // hotels.updated_at
}

// Room is a bookable hotel room.  Capacity is the maximum number of
// simultaneous occupants.  Occupants is not a column: repositories
// derive it by counting the bookings that reference the room at read
// time, and it is never serialised.
type Room struct {
	ID        uint64    `json:"id"`        // rooms.id
	Name      string    `json:"name"`      // rooms.name
	Capacity  int       `json:"capacity"`  // rooms.capacity
	HotelID   uint64    `json:"hotelId"`   // rooms.hotel_id
	CreatedAt time.Time `json:"createdAt"` // rooms.created_at
	UpdatedAt time.Time `json:"updatedAt"` // rooms.updated_at
	Occupants int       `json:"-"`
}

// Free returns the number of remaining slots.  A room with capacity zero
// or less is always full.
func (r Room) Free() int {
	if r.Capacity <= 0 || r.Occupants >= r.Capacity {
		return 0
	}
	return r.Capacity - r.Occupants
}

// Full reports whether the room can take no further occupant.
func (r Room) Full() bool { return r.Free() == 0 }
