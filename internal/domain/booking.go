package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const PaymentMethodWallet = "wallet"

type Booking struct {
	ID            int
	ShowtimeID    int
	AccountID     int
	TicketCount   int
	TotalPrice    decimal.Decimal
	PaymentMethod string
	PaymentDate   time.Time
	IsActive      bool
	CreatedAt     time.Time
	CancelledAt   *time.Time
}

// BookingDetail is a booking joined with the showtime it claims seats of.
type BookingDetail struct {
	Booking
	AccountEmail string
	MovieTitle   string
	TheaterName  string
	TheaterCity  string
	Format       string
	StartTime    time.Time
}

type BookingStatusFilter string

const (
	BookingStatusAll       BookingStatusFilter = "all"
	BookingStatusActive    BookingStatusFilter = "active"
	BookingStatusCancelled BookingStatusFilter = "cancelled"
)

// BookingFilter narrows an admin search. From is inclusive, To exclusive.
type BookingFilter struct {
	Status BookingStatusFilter
	From   *time.Time
	To     *time.Time
	Pagination
}

type MovieBookingCount struct {
	MovieTitle   string
	BookingCount int
}

type BookingStats struct {
	TotalBookings     int
	ActiveBookings    int
	CancelledBookings int
	TotalRevenue      decimal.Decimal
	TodayBookings     int
	TopMovies         []MovieBookingCount
}

type BookingRepository interface {
	GetById(ctx context.Context, id int) (*BookingDetail, error)
	GetByAccountId(ctx context.Context, accountId int, pagination Pagination) ([]BookingDetail, *Metadata, error)
	Search(ctx context.Context, filter BookingFilter) ([]BookingDetail, *Metadata, error)
	Stats(ctx context.Context, since time.Time) (*BookingStats, error)
}

// BookingTx is the set of row-level operations available inside one atomic
// booking unit. Every *ForUpdate method locks the returned row until the
// surrounding transaction ends.
type BookingTx interface {
	AccountForUpdate(ctx context.Context, id int) (*Account, error)
	AdjustBalance(ctx context.Context, accountId int, delta decimal.Decimal) (decimal.Decimal, error)

	ShowtimeForUpdate(ctx context.Context, id int) (*Showtime, error)
	AdjustBookedSeats(ctx context.Context, showtimeId int, delta int) (*SeatCounter, error)

	BookingForUpdate(ctx context.Context, id int) (*Booking, error)
	InsertBooking(ctx context.Context, booking *Booking) error
	DeactivateBooking(ctx context.Context, id int, at time.Time) error

	PaymentForUpdate(ctx context.Context, checkoutSessionId string) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int, status PaymentStatus, at time.Time) error
}

type BookingStore interface {
	WithinTx(ctx context.Context, fn func(tx BookingTx) error) error
}
