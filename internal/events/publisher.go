// Package events publishes movie and actor lifecycle events to RabbitMQ.
// Publishing happens after the database transaction commits; failures are
// logged and returned but never undo the write that produced the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	MovieCreated = "movie.created"
	MovieUpdated = "movie.updated"
	MovieDeleted = "movie.deleted"
	ActorCreated = "actor.created"
	ActorUpdated = "actor.updated"
	ActorDeleted = "actor.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, entityID int64) Event {
	return Event{Type: eventType, EntityID: entityID, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event. Used when RABBITMQ_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error { return nil }

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// link is one live broker session. closed fires when the broker or the
// network drops the channel.
type link struct {
	conn   io.Closer
	ch     channel
	closed <-chan *amqp.Error
}

type dialFunc func() (*link, error)

// AMQPPublisher reconnects lazily: a publish after the channel closed dials
// again before sending.
type AMQPPublisher struct {
	mu    sync.Mutex
	link  *link
	dial  dialFunc
	queue string
	log   zerolog.Logger
}

// NewAMQPPublisher dials the broker and declares queue as durable.
func NewAMQPPublisher(url, queue string, log zerolog.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		dial:  func() (*link, error) { return dialQueue(url, queue) },
		queue: queue,
		log:   log,
	}
	l, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.link = l
	return p, nil
}

func dialQueue(url, queue string) (*link, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	return &link{conn: conn, ch: ch, closed: ch.NotifyClose(make(chan *amqp.Error, 1))}, nil
}

func (l *link) isClosed() bool {
	if l == nil {
		return true
	}
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

func (l *link) close() error {
	if l == nil {
		return nil
	}
	if l.ch != nil {
		_ = l.ch.Close()
	}
	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}

// ensureLink must be called with p.mu held.
func (p *AMQPPublisher) ensureLink() error {
	if !p.link.isClosed() {
		return nil
	}
	if p.dial == nil {
		return errors.New("rabbitmq channel closed")
	}
	_ = p.link.close()
	p.link = nil

	l, err := p.dial()
	if err != nil {
		return fmt.Errorf("rabbitmq reconnect: %w", err)
	}
	p.log.Info().Str("queue", p.queue).Msg("Reconnected to RabbitMQ")
	p.link = l
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         e.Type,
		Timestamp:    e.OccurredAt,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishes
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureLink(); err != nil {
		p.log.Warn().Err(err).Str("event", e.Type).Int64("entity_id", e.EntityID).Msg("Failed to publish event")
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	if err := p.link.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Warn().Err(err).Str("event", e.Type).Int64("entity_id", e.EntityID).Msg("Failed to publish event")
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	p.log.Debug().Str("event", e.Type).Int64("entity_id", e.EntityID).Msg("Event published")
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	// no reconnects after Close
	p.dial = nil
	err := p.link.close()
	p.link = nil
	return err
}

// New returns an AMQP publisher when url is set and a NoopPublisher otherwise.
// A broker that cannot be reached degrades to the noop publisher.
func New(url, queue string, log zerolog.Logger) Publisher {
	if url == "" {
		log.Info().Msg("RABBITMQ_URL not set, lifecycle events disabled")
		return NoopPublisher{}
	}
	p, err := NewAMQPPublisher(url, queue, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, lifecycle events disabled")
		return NoopPublisher{}
	}
	log.Info().Str("queue", queue).Msg("Publishing lifecycle events to RabbitMQ")
	return p
}
