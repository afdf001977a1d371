package handler

import (
	"context"  // context for repository calls
	"errors"   // errors.Is for repository sentinels
	"log/slog" // slog records lookup failures
	"net/http" // HTTP status codes
	"time"     // availability timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/conference-room-booking/internal/booking"
	"github.com/iliyamo/conference-room-booking/internal/model"
	"github.com/iliyamo/conference-room-booking/internal/repository"
)

// RoomReader is the read side of rooms.  *repository.RoomRepo satisfies it.
type RoomReader interface {
	FindRoom(ctx context.Context, roomID uint64) (*model.Room, error)
	ListByHotel(ctx context.Context, hotelID uint64) (*model.Hotel, []model.Room, error)
}

// RoomHandler serves the public availability endpoints.  Responses are
// informational: booking writes re-check capacity under lock.
type RoomHandler struct {
	Rooms RoomReader
}

func NewRoomHandler(rooms RoomReader) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomAvailability struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   uint64    `json:"hotelId"`
	Occupants int       `json:"occupants"`
	Free      int       `json:"free"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAvailability(r model.Room) roomAvailability {
	return roomAvailability{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		HotelID:   r.HotelID,
		Occupants: r.Occupants,
		Free:      r.Free(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListHotelRooms handles GET /v1/hotels/:hotelId/rooms.
func (h *RoomHandler) ListHotelRooms(c echo.Context) error {
	hotelID, ok := booking.ParseID(c.Param("hotelId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, rooms, err := h.Rooms.ListByHotel(c.Request().Context(), hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		slog.Error("list rooms failed", "hotel_id", hotelID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal"})
	}
	out := make([]roomAvailability, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toAvailability(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        hotel.ID,
		"name":      hotel.Name,
		"image":     hotel.Image,
		"createdAt": hotel.CreatedAt,
		"updatedAt": hotel.UpdatedAt,
		"Rooms":     out,
	})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, ok := booking.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.FindRoom(c.Request().Context(), roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		slog.Error("get room failed", "room_id", roomID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal"})
	}
	return c.JSON(http.StatusOK, toAvailability(*room))
}
