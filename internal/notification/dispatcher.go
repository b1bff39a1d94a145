package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/moviemate/internal/domain"
)

const (
	DefaultWorkers         = 4
	DefaultBufferSize      = 256
	DefaultDeliveryTimeout = 10 * time.Second
)

// Sink delivers a single event to one channel (database, mail, broker).
type Sink interface {
	Deliver(ctx context.Context, event domain.BookingEvent) error
}

type DispatcherConfig struct {
	Workers         int
	BufferSize      int
	DeliveryTimeout time.Duration
}

// Dispatcher hands events to a Sink from a fixed pool of workers. Notify never
// blocks; when the buffer is full the event is dropped and logged.
type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	cfg    DispatcherConfig
	queue  chan domain.BookingEvent

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sink Sink, logger *slog.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = DefaultDeliveryTimeout
	}

	return &Dispatcher{
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		queue:  make(chan domain.BookingEvent, cfg.BufferSize),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

func (d *Dispatcher) Notify(event domain.BookingEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dispatcher stopped, dropping event", "event_id", event.ID, "kind", event.Kind)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("notification queue is full, dropping event", "event_id", event.ID, "kind", event.Kind)
	}
}

// Shutdown stops accepting events and waits until the queued ones are
// delivered or ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("notification queue not drained"), ctx.Err())
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.BookingEvent) {
	logger := d.logger.With("event_id", event.ID, "kind", event.Kind, "account_id", event.Account.ID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic occurred while delivering notification", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
	defer cancel()

	err := d.sink.Deliver(ctx, event)
	if err != nil {
		logger.Error("failed to deliver notification", "error", err)
		return
	}

	logger.Info("notification delivered", "booking_id", event.BookingID)
}

// MultiSink delivers to every sink and reports all failures together.
type MultiSink []Sink

func (m MultiSink) Deliver(ctx context.Context, event domain.BookingEvent) error {
	var errs []error

	for _, sink := range m {
		err := sink.Deliver(ctx, event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
