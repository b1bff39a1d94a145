package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	err    error
	block  chan struct{}
	panics bool
}

func (s *recordingSink) Deliver(ctx context.Context, event domain.BookingEvent) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if s.panics {
		panic("sink exploded")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)

	return s.err
}

func (s *recordingSink) delivered() []domain.BookingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.BookingEvent(nil), s.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherDeliversQueuedEventsOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, discardLogger(), DispatcherConfig{Workers: 2, BufferSize: 16})
	d.Start()

	for i := 0; i < 10; i++ {
		d.Notify(domain.BookingEvent{ID: string(rune('a' + i)), Kind: domain.EventKindConfirmation})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, d.Shutdown(ctx))
	assert.Len(t, sink.delivered(), 10)
}

func TestDispatcherNotifyNeverBlocks(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(sink, discardLogger(), DispatcherConfig{Workers: 1, BufferSize: 1, DeliveryTimeout: time.Second})
	d.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			d.Notify(domain.BookingEvent{Kind: domain.EventKindCancellation})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(sink.block)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, d.Shutdown(ctx))
	assert.LessOrEqual(t, len(sink.delivered()), 2)
}

func TestDispatcherDropsEventsAfterShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, discardLogger(), DispatcherConfig{Workers: 1})
	d.Start()

	require.NoError(t, d.Shutdown(context.Background()))
	require.NoError(t, d.Shutdown(context.Background()))

	d.Notify(domain.BookingEvent{Kind: domain.EventKindConfirmation})

	assert.Empty(t, sink.delivered())
}

func TestDispatcherSurvivesFailingSinks(t *testing.T) {
	tests := []struct {
		name string
		sink *recordingSink
	}{
		{name: "sink returns an error", sink: &recordingSink{err: errors.New("smtp unavailable")}},
		{name: "sink panics", sink: &recordingSink{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.sink, discardLogger(), DispatcherConfig{Workers: 1})
			d.Start()

			d.Notify(domain.BookingEvent{Kind: domain.EventKindConfirmation})
			d.Notify(domain.BookingEvent{Kind: domain.EventKindConfirmation})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			assert.NoError(t, d.Shutdown(ctx))
		})
	}
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	first := &recordingSink{err: errors.New("first failed")}
	second := &recordingSink{}
	third := &recordingSink{err: errors.New("third failed")}

	err := MultiSink{first, second, third}.Deliver(context.Background(), domain.BookingEvent{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "first failed")
	assert.ErrorContains(t, err, "third failed")
	assert.Len(t, second.delivered(), 1)
}
