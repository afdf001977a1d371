package booking

import (
	"context"
	"testing"

	"github.com/iliyamo/conference-room-booking/internal/model"
)

func TestGateCheck(t *testing.T) {
	cases := []struct {
		name     string
		enrolled bool
		ticket   *model.Ticket
		want     Kind
		ok       bool
	}{
		{name: "no enrollment", enrolled: false, want: KindNotEnrolled},
		{name: "enrolled without ticket", enrolled: true, want: KindTicketIneligible},
		{
			name: "remote ticket", enrolled: true, want: KindTicketIneligible,
			ticket: &model.Ticket{Status: model.TicketStatusPaid, TicketType: model.TicketType{IsRemote: true}},
		},
		{
			name: "reserved ticket", enrolled: true, want: KindTicketIneligible,
			ticket: &model.Ticket{Status: model.TicketStatusReserved},
		},
		{
			name: "paid in-person ticket", enrolled: true, ok: true,
			ticket: &model.Ticket{Status: model.TicketStatusPaid, TicketType: model.TicketType{IncludesHotel: true}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enr := &fakeEnrollments{enrolled: map[uint64]bool{5: tc.enrolled}}
			tix := &fakeTickets{byUser: map[uint64]*model.Ticket{}}
			if tc.ticket != nil {
				tix.byUser[5] = tc.ticket
			}
			err := Gate{Enrollments: enr, Tickets: tix}.Check(context.Background(), 5)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected eligible, got %v", err)
				}
				return
			}
			if err == nil || KindOf(err) != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
		})
	}
}
