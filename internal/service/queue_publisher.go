// Package service holds integrations the HTTP layer calls after a request's
// main work is done.  Currently that is the RabbitMQ booking event
// publisher.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/conference-room-booking/internal/queue"
)

// Publisher sends booking events to the booking topic exchange.  The
// connection is opened lazily and reopened after a failure, so a broker
// outage at startup does not prevent the server from running.
type Publisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// defaultDialTimeout bounds a broker dial when the caller's context has
// no earlier deadline.
const defaultDialTimeout = 5 * time.Second

// NewPublisher returns a Publisher for the broker at url.  No connection
// is made until the first Publish.
func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// Publish sends ev with its event name as the routing key.  Messages are
// persistent.  Errors are logged and returned so the caller can ignore
// them without interrupting the request flow.
func (p *Publisher) Publish(ctx context.Context, ev q.BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	ch, err := p.channel(ctx)
	if err != nil {
		slog.Warn("rabbitmq: connect failed", "err", err, "event", ev.Event)
		return err
	}
	err = ch.PublishWithContext(ctx, q.Exchange, ev.Event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		slog.Warn("rabbitmq: publish failed", "err", err, "event", ev.Event, "booking_id", ev.BookingID)
		p.reset()
		return err
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// dialTimeout is the time left before ctx's deadline, capped at
// defaultDialTimeout.
func dialTimeout(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < defaultDialTimeout {
			return d
		}
	}
	return defaultDialTimeout
}

// channel returns the open channel, dialing if needed.  Callers hold mu.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(q.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
