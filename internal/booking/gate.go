package booking

import (
	"context"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/repository"
)

// Gate decides whether a user may book at all: the user needs an
// enrollment with an address and a ticket that is in-person and paid.
type Gate struct {
	Enrollments EnrollmentFinder
	Tickets     TicketFinder
}

// Check returns nil when the user is eligible.  Otherwise the error
// carries KindNotEnrolled, KindTicketIneligible or, for lookup
// failures, KindInternal.  Check performs no writes.
func (g Gate) Check(ctx context.Context, userID uint64) error {
	const op = "booking.Gate.Check"
	if _, err := g.Enrollments.FindWithAddressByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return fail(op, KindNotEnrolled, err)
		}
		return internal(op, err)
	}
	ticket, err := g.Tickets.FindByUserID(ctx, userID)
	if err != nil {
		// No ticket means no in-person admission.
		if errors.Is(err, repository.ErrTicketNotFound) {
			return fail(op, KindTicketIneligible, err)
		}
		return internal(op, err)
	}
	if ticket.TicketType.IsRemote || !ticket.Confirmed() {
		return fail(op, KindTicketIneligible, nil)
	}
	return nil
}
