package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/model"
)

// TicketRepo reads tickets together with their ticket type.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindByUserID returns the most recent ticket attached to the user's
// enrollment, with TicketType populated.  It returns ErrTicketNotFound
// when the user has no ticket.
func (r *TicketRepo) FindByUserID(ctx context.Context, userID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
                      tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
               FROM tickets t
               JOIN ticket_types tt ON tt.id = t.ticket_type_id
               JOIN enrollments e ON e.id = t.enrollment_id
               WHERE e.user_id = ?
               ORDER BY t.id DESC
               LIMIT 1`
	var (
		t      model.Ticket
		status string
	)
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&t.ID, &t.TicketTypeID, &t.EnrollmentID, &status, &t.CreatedAt, &t.UpdatedAt,
		&t.TicketType.ID, &t.TicketType.Name, &t.TicketType.PriceCents, &t.TicketType.IsRemote,
		&t.TicketType.IncludesHotel, &t.TicketType.CreatedAt, &t.TicketType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	t.Status = model.TicketStatus(status)
	return &t, nil
}
