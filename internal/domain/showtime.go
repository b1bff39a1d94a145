package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID             int
	MovieID        int
	TheaterID      int
	FormatID       int
	MovieTitle     string
	TheaterName    string
	TheaterCity    string
	Format         string
	StartTime      time.Time
	Price          decimal.Decimal
	Capacity       int
	BookedSeats    int
	BookingEnabled bool
	IsActive       bool
	CreatedAt      time.Time
}

// AvailableSeats never reports a negative number, even if the counters drifted.
func (s Showtime) AvailableSeats() int {
	return max(s.Capacity-s.BookedSeats, 0)
}

// SeatCounter is the projection returned after the booked-seat counter moves.
type SeatCounter struct {
	ShowtimeID     int
	Capacity       int
	BookedSeats    int
	BookingEnabled bool
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int) (*Showtime, error)
	Create(ctx context.Context, showtime *Showtime) error
	Deactivate(ctx context.Context, id int) error
}
