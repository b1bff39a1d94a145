package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/moviemate/internal/booking"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockBookingManager struct {
	mock.Mock
}

func (m *MockBookingManager) CreateBooking(
	ctx context.Context,
	input booking.CreateBookingInput) (*booking.CreateBookingResult, error) {

	args := m.Called(ctx, input)
	return args.Get(0).(*booking.CreateBookingResult), args.Error(1)
}

func (m *MockBookingManager) CancelBooking(ctx context.Context, bookingID int) (*booking.CancelBookingResult, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(*booking.CancelBookingResult), args.Error(1)
}

func (m *MockBookingManager) CompleteTopUp(ctx context.Context, checkoutSessionID string) (*booking.TopUpResult, error) {
	args := m.Called(ctx, checkoutSessionID)
	return args.Get(0).(*booking.TopUpResult), args.Error(1)
}

// MockBookingStore runs the unit against Tx once per attempt. The error
// returned by WithinTx is taken from the expectation when one is set and
// from the unit otherwise.
type MockBookingStore struct {
	mock.Mock
	Tx *MockBookingTx
}

func (m *MockBookingStore) WithinTx(ctx context.Context, fn func(tx domain.BookingTx) error) error {
	args := m.Called(ctx)

	err := fn(m.Tx)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return err
}

type MockBookingTx struct {
	mock.Mock
}

func (m *MockBookingTx) AccountForUpdate(ctx context.Context, id int) (*domain.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBookingTx) AdjustBalance(
	ctx context.Context,
	accountId int,
	delta decimal.Decimal) (decimal.Decimal, error) {

	args := m.Called(ctx, accountId, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBookingTx) ShowtimeForUpdate(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockBookingTx) AdjustBookedSeats(ctx context.Context, showtimeId int, delta int) (*domain.SeatCounter, error) {
	args := m.Called(ctx, showtimeId, delta)
	return args.Get(0).(*domain.SeatCounter), args.Error(1)
}

func (m *MockBookingTx) BookingForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingTx) InsertBooking(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingTx) DeactivateBooking(ctx context.Context, id int, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingTx) PaymentForUpdate(ctx context.Context, checkoutSessionId string) (*domain.Payment, error) {
	args := m.Called(ctx, checkoutSessionId)
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBookingTx) UpdatePaymentStatus(
	ctx context.Context,
	id int,
	status domain.PaymentStatus,
	at time.Time) error {

	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

// MockNotifier records every event it receives.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(event domain.BookingEvent) {
	m.Called(event)
}
