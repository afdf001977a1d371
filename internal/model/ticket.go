package model

import "time"

// TicketStatus is the payment state of a ticket.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED" // created, awaiting payment
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType describes a kind of admission.  Remote tickets grant online
// access only and never entitle the holder to a room.
type TicketType struct {
	ID            uint64    // ticket_types.id
	Name          string    // ticket_types.name
	PriceCents    uint32    // ticket_types.price_cents
	IsRemote      bool      // ticket_types.is_remote
	IncludesHotel bool      // ticket_types.includes_hotel
	CreatedAt     time.Time // ticket_types.created_at
	UpdatedAt     time.Time // ticket_types.updated_at
}

// Ticket is a purchased admission.  It belongs to one enrollment and
// always carries its TicketType when loaded by the repository.
type Ticket struct {
	ID           uint64       // tickets.id
	TicketTypeID uint64       // tickets.ticket_type_id
	EnrollmentID uint64       // tickets.enrollment_id
	Status       TicketStatus // tickets.status
	TicketType   TicketType
	CreatedAt    time.Time // tickets.created_at
	UpdatedAt    time.Time // tickets.updated_at
}

// Confirmed reports whether payment for the ticket has gone through.
func (t Ticket) Confirmed() bool { return t.Status != TicketStatusReserved }
