package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/conference-room-booking/internal/model"
	"github.com/iliyamo/conference-room-booking/internal/repository"
)

type fakeEnrollments struct {
	mu       sync.Mutex
	enrolled map[uint64]bool
	err      error
	calls    int
}

func (f *fakeEnrollments) FindWithAddressByUserID(_ context.Context, userID uint64) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !f.enrolled[userID] {
		return nil, repository.ErrEnrollmentNotFound
	}
	return &model.Enrollment{ID: userID + 100, UserID: userID}, nil
}

type fakeTickets struct {
	byUser map[uint64]*model.Ticket
	err    error
}

func (f *fakeTickets) FindByUserID(_ context.Context, userID uint64) (*model.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return t, nil
}

// memStore is an in-memory Store.  Atomic holds the store mutex for the
// whole callback and restores the previous bookings when it fails, which
// is the behaviour the SQL store gets from a locked transaction.  The
// first conflicts calls to Atomic fail as deadlock victims after running
// onConflict, which plays the winning writer.
type memStore struct {
	mu          sync.Mutex
	rooms       map[uint64]model.Room
	bookings    map[uint64]model.Booking
	nextID      uint64
	roomLookups int
	findErr     error
	insertErr   error
	updateErr   error
	conflicts   int
	onConflict  func(s *memStore)
	attempts    int
}

func newMemStore() *memStore {
	return &memStore{
		rooms:    map[uint64]model.Room{},
		bookings: map[uint64]model.Booking{},
		nextID:   1,
	}
}

func (s *memStore) occupants(roomID uint64) int {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n
}

func (s *memStore) byUser(userID uint64) (*model.Booking, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, b := range s.bookings {
		if b.UserID == userID {
			rm := s.rooms[b.RoomID]
			b.Room = &rm
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (s *memStore) FindByUser(_ context.Context, userID uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byUser(userID)
}

func (s *memStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx StoreTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.conflicts > 0 {
		s.conflicts--
		if s.onConflict != nil {
			s.onConflict(s)
		}
		return fmt.Errorf("%w: Error 1213: Deadlock found", repository.ErrTxConflict)
	}
	saved := make(map[uint64]model.Booking, len(s.bookings))
	for k, v := range s.bookings {
		saved[k] = v
	}
	savedID := s.nextID
	if err := fn(ctx, memTx{s}); err != nil {
		s.bookings = saved
		s.nextID = savedID
		return err
	}
	return nil
}

// add stores a booking directly, bypassing the engine.
func (s *memStore) add(userID, roomID uint64) model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Booking{ID: s.nextID, UserID: userID, RoomID: roomID, CreatedAt: time.Unix(0, 0), UpdatedAt: time.Unix(0, 0)}
	s.bookings[b.ID] = b
	s.nextID++
	return b
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type memTx struct{ s *memStore }

func (t memTx) FindRoom(_ context.Context, roomID uint64) (*model.Room, error) {
	t.s.roomLookups++
	rm, ok := t.s.rooms[roomID]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	rm.Occupants = t.s.occupants(roomID)
	return &rm, nil
}

func (t memTx) FindByUser(_ context.Context, userID uint64) (*model.Booking, error) {
	return t.s.byUser(userID)
}

func (t memTx) Insert(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	if t.s.insertErr != nil {
		return nil, t.s.insertErr
	}
	b := model.Booking{ID: t.s.nextID, UserID: userID, RoomID: roomID}
	t.s.bookings[b.ID] = b
	t.s.nextID++
	return &b, nil
}

func (t memTx) UpdateRoom(_ context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	if t.s.updateErr != nil {
		return nil, t.s.updateErr
	}
	b, ok := t.s.bookings[bookingID]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	b.RoomID = roomID
	t.s.bookings[bookingID] = b
	return &b, nil
}

type fixture struct {
	enrollments *fakeEnrollments
	tickets     *fakeTickets
	store       *memStore
	engine      *Engine
}

func newFixture() *fixture {
	f := &fixture{
		enrollments: &fakeEnrollments{enrolled: map[uint64]bool{}},
		tickets:     &fakeTickets{byUser: map[uint64]*model.Ticket{}},
		store:       newMemStore(),
	}
	f.engine = NewEngine(f.enrollments, f.tickets, f.store)
	return f
}

// eligible enrolls the user with a paid, in-person ticket.
func (f *fixture) eligible(userID uint64) {
	f.withTicket(userID, false, model.TicketStatusPaid)
}

func (f *fixture) withTicket(userID uint64, remote bool, status model.TicketStatus) {
	f.enrollments.enrolled[userID] = true
	f.tickets.byUser[userID] = &model.Ticket{
		ID:         userID,
		Status:     status,
		TicketType: model.TicketType{IsRemote: remote, IncludesHotel: !remote},
	}
}

// room adds a room already holding the given number of occupants.  The
// occupants are synthetic users numbered from 10000 upwards.
func (f *fixture) room(id uint64, capacity, occupants int) {
	f.store.rooms[id] = model.Room{ID: id, Name: "room", Capacity: capacity, HotelID: 1}
	for i := 0; i < occupants; i++ {
		f.store.add(10000+id*100+uint64(i), id)
	}
}
