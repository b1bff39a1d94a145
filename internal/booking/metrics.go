package booking

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/metinatakli/moviemate/internal/booking"

var (
	tracer    = otel.Tracer(instrumentationName)
	noopMeter = noop.Meter{}
)

type metrics struct {
	created   metric.Int64Counter
	cancelled metric.Int64Counter
	toppedUp  metric.Int64Counter
	rejected  metric.Int64Counter
	conflicts metric.Int64Counter
}

// newMetrics falls back to no-op instruments when the meter rejects one.
func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)

	return &metrics{
		created:   counter(meter, "bookings.created", "Bookings committed"),
		cancelled: counter(meter, "bookings.cancelled", "Bookings cancelled and refunded"),
		toppedUp:  counter(meter, "wallet.topups", "Wallet top-ups credited"),
		rejected:  counter(meter, "bookings.rejected", "Booking operations that ended in a failure"),
		conflicts: counter(meter, "bookings.conflicts", "Booking transactions retried because of lock contention"),
	}
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		c, _ = noopMeter.Int64Counter(name)
	}

	return c
}
