package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/metinatakli/moviemate/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultAMQPQueue = "booking.events"

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// AMQPSink publishes events as persistent JSON messages to a durable queue.
// The connection is opened on first use and reopened after the broker drops it.
type AMQPSink struct {
	queue string
	dial  func() (amqpChannel, error)

	mu      sync.Mutex
	channel amqpChannel
}

func NewAMQPSink(url, queue string) *AMQPSink {
	if queue == "" {
		queue = DefaultAMQPQueue
	}

	return &AMQPSink{
		queue: queue,
		dial: func() (amqpChannel, error) {
			return openAMQPChannel(url, queue)
		},
	}
}

func (s *AMQPSink) Deliver(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("amqp: marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Kind),
		Timestamp:    event.OccurredAt.UTC(),
		Body:         body,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.ensureChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", s.queue, false, false, msg)
	if err != nil {
		return fmt.Errorf("amqp: publish: %w", err)
	}

	return nil
}

func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel == nil {
		return nil
	}

	err := s.channel.Close()
	s.channel = nil

	return err
}

func (s *AMQPSink) ensureChannel() (amqpChannel, error) {
	if s.channel != nil && !s.channel.IsClosed() {
		return s.channel, nil
	}

	ch, err := s.dial()
	if err != nil {
		return nil, fmt.Errorf("amqp: connect: %w", err)
	}

	s.channel = ch

	return ch, nil
}

type connChannel struct {
	*amqp.Channel
	conn *amqp.Connection
}

func (c *connChannel) Close() error {
	return errors.Join(c.Channel.Close(), c.conn.Close())
}

func openAMQPChannel(url, queue string) (amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(err, conn.Close())
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, errors.Join(err, ch.Close(), conn.Close())
	}

	return &connChannel{Channel: ch, conn: conn}, nil
}
