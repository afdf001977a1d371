package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iliyamo/conference-room-booking/internal/model"
	q "github.com/iliyamo/conference-room-booking/internal/queue"
)

// EventPublisher is implemented by *Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.BookingEvent) error
}

// eventBacklog is how many events may wait for the publisher before new
// ones are dropped.
const eventBacklog = 256

type publishJob struct {
	ctx context.Context
	ev  q.BookingEvent
}

// BookingEvents turns committed booking writes into broker events.  A
// single worker publishes them in order so the HTTP response never waits
// on the broker.  When the backlog is full the event is logged and
// dropped.
type BookingEvents struct {
	pub     EventPublisher
	timeout time.Duration
	now     func() time.Time

	mu     sync.Mutex
	closed bool
	jobs   chan publishJob
	done   chan struct{}
}

// NewBookingEvents publishes through pub, giving each event up to 5s.
func NewBookingEvents(pub EventPublisher) *BookingEvents {
	return newBookingEvents(pub, eventBacklog)
}

func newBookingEvents(pub EventPublisher, backlog int) *BookingEvents {
	e := &BookingEvents{
		pub:     pub,
		timeout: 5 * time.Second,
		now:     time.Now,
		jobs:    make(chan publishJob, backlog),
		done:    make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *BookingEvents) BookingCreated(ctx context.Context, b *model.Booking) {
	e.send(ctx, q.NewCreatedEvent(b.ID, b.UserID, b.RoomID, e.now()))
}

func (e *BookingEvents) BookingChanged(ctx context.Context, previousRoomID uint64, b *model.Booking) {
	e.send(ctx, q.NewChangedEvent(b.ID, b.UserID, previousRoomID, b.RoomID, e.now()))
}

// Close stops accepting events and waits until the backlog is published
// or ctx ends, whichever comes first.
func (e *BookingEvents) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.jobs)
	}
	e.mu.Unlock()
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *BookingEvents) run() {
	defer close(e.done)
	for job := range e.jobs {
		ctx, cancel := context.WithTimeout(job.ctx, e.timeout)
		_ = e.pub.Publish(ctx, job.ev) // Publisher logs its own failures
		cancel()
	}
}

func (e *BookingEvents) send(ctx context.Context, ev q.BookingEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		slog.Warn("booking events: closed, dropping event", "event", ev.Event, "booking_id", ev.BookingID)
		return
	}
	// detach from the request: it is about to complete
	select {
	case e.jobs <- publishJob{ctx: context.WithoutCancel(ctx), ev: ev}:
	default:
		slog.Warn("booking events: backlog full, dropping event", "event", ev.Event, "booking_id", ev.BookingID)
	}
}
