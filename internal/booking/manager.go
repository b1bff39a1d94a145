package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMaxAttempts  = 3
	DefaultRetryBackoff = 25 * time.Millisecond
)

// Notifier receives events once the unit that produced them has committed.
// Implementations must not block the caller.
type Notifier interface {
	Notify(event domain.BookingEvent)
}

type Config struct {
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Manager moves seats and wallet money together. It is the only writer of a
// showtime's booked-seat counter, its booking-enabled flag and the balance
// deltas caused by bookings, cancellations and top-ups.
type Manager struct {
	store    domain.BookingStore
	notifier Notifier
	logger   *slog.Logger
	cfg      Config
	metrics  *metrics
	now      func() time.Time
}

func NewManager(store domain.BookingStore, notifier Notifier, logger *slog.Logger, cfg Config) *Manager {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}

	return &Manager{
		store:    store,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		metrics:  newMetrics(),
		now:      time.Now,
	}
}

type CreateBookingInput struct {
	AccountID     int
	ShowtimeID    int
	TicketCount   int
	TotalPrice    decimal.Decimal
	PaymentMethod string
}

type CreateBookingResult struct {
	Booking    *domain.Booking
	NewBalance decimal.Decimal
}

type CancelBookingResult struct {
	BookingID      int
	RefundedAmount decimal.Decimal
	NewBalance     decimal.Decimal
}

type TopUpResult struct {
	PaymentID        int
	AccountID        int
	Amount           decimal.Decimal
	NewBalance       decimal.Decimal
	AlreadyProcessed bool
}

func (m *Manager) CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	ctx, span := tracer.Start(ctx, "booking.CreateBooking", trace.WithAttributes(
		attribute.Int("account.id", input.AccountID),
		attribute.Int("showtime.id", input.ShowtimeID),
		attribute.Int("booking.tickets", input.TicketCount),
	))
	defer span.End()

	err := validateCreateInput(input)
	if err != nil {
		m.rejected(ctx, span, err)
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodWallet
	}

	var (
		result *CreateBookingResult
		event  domain.BookingEvent
	)

	err = m.inTx(ctx, func(tx domain.BookingTx) error {
		account, err := tx.AccountForUpdate(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		if account.Balance.LessThan(input.TotalPrice) {
			return &domain.InsufficientBalanceError{
				Required: input.TotalPrice,
				Current:  account.Balance,
			}
		}

		showtime, err := tx.ShowtimeForUpdate(ctx, input.ShowtimeID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrShowtimeNotFound
			}
			return err
		}

		if !showtime.BookingEnabled || !showtime.IsActive {
			return domain.ErrBookingClosed
		}

		if available := showtime.AvailableSeats(); available < input.TicketCount {
			return &domain.InsufficientSeatsError{
				Available: available,
				Requested: input.TicketCount,
			}
		}

		now := m.now()
		booking := &domain.Booking{
			ShowtimeID:    showtime.ID,
			AccountID:     account.ID,
			TicketCount:   input.TicketCount,
			TotalPrice:    input.TotalPrice,
			PaymentMethod: paymentMethod,
			PaymentDate:   now,
			IsActive:      true,
			CreatedAt:     now,
		}

		err = tx.InsertBooking(ctx, booking)
		if err != nil {
			return err
		}

		newBalance, err := tx.AdjustBalance(ctx, account.ID, input.TotalPrice.Neg())
		if err != nil {
			return err
		}

		counter, err := tx.AdjustBookedSeats(ctx, showtime.ID, input.TicketCount)
		if err != nil {
			return err
		}

		if !counter.BookingEnabled {
			m.logger.Info("showtime sold out, booking closed", "showtime_id", showtime.ID, "capacity", counter.Capacity)
		}

		result = &CreateBookingResult{Booking: booking, NewBalance: newBalance}
		event = newShowtimeEvent(domain.EventKindConfirmation, account, showtime, booking, newBalance, now)

		return nil
	})
	if err != nil {
		m.rejected(ctx, span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("booking.id", result.Booking.ID))
	m.metrics.created.Add(ctx, 1)
	m.notify(event)

	return result, nil
}

func (m *Manager) CancelBooking(ctx context.Context, bookingID int) (*CancelBookingResult, error) {
	ctx, span := tracer.Start(ctx, "booking.CancelBooking", trace.WithAttributes(
		attribute.Int("booking.id", bookingID),
	))
	defer span.End()

	if bookingID <= 0 {
		err := &domain.InvalidRequestError{Field: "bookingId", Reason: "must be a positive integer"}
		m.rejected(ctx, span, err)
		return nil, err
	}

	var (
		result *CancelBookingResult
		event  domain.BookingEvent
	)

	err := m.inTx(ctx, func(tx domain.BookingTx) error {
		booking, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrBookingNotFound
			}
			return err
		}

		if !booking.IsActive {
			return domain.ErrAlreadyCancelled
		}

		account, err := tx.AccountForUpdate(ctx, booking.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		showtime, err := tx.ShowtimeForUpdate(ctx, booking.ShowtimeID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrShowtimeNotFound
			}
			return err
		}

		now := m.now()

		err = tx.DeactivateBooking(ctx, booking.ID, now)
		if err != nil {
			return err
		}

		newBalance, err := tx.AdjustBalance(ctx, account.ID, booking.TotalPrice)
		if err != nil {
			return err
		}

		counter, err := tx.AdjustBookedSeats(ctx, showtime.ID, -booking.TicketCount)
		if err != nil {
			return err
		}

		if counter.BookingEnabled && !showtime.BookingEnabled {
			m.logger.Info("seats released, booking reopened", "showtime_id", showtime.ID, "booked_seats", counter.BookedSeats)
		}

		result = &CancelBookingResult{
			BookingID:      booking.ID,
			RefundedAmount: booking.TotalPrice,
			NewBalance:     newBalance,
		}
		event = newShowtimeEvent(domain.EventKindCancellation, account, showtime, booking, newBalance, now)

		return nil
	})
	if err != nil {
		m.rejected(ctx, span, err)
		return nil, err
	}

	m.metrics.cancelled.Add(ctx, 1)
	m.notify(event)

	return result, nil
}

// CompleteTopUp credits the wallet for a paid checkout session. Calling it
// again for the same session reports AlreadyProcessed and moves no money.
func (m *Manager) CompleteTopUp(ctx context.Context, checkoutSessionID string) (*TopUpResult, error) {
	ctx, span := tracer.Start(ctx, "booking.CompleteTopUp")
	defer span.End()

	if checkoutSessionID == "" {
		err := &domain.InvalidRequestError{Field: "checkoutSessionId", Reason: "is required"}
		m.rejected(ctx, span, err)
		return nil, err
	}

	var (
		result *TopUpResult
		event  *domain.BookingEvent
	)

	err := m.inTx(ctx, func(tx domain.BookingTx) error {
		event = nil

		payment, err := tx.PaymentForUpdate(ctx, checkoutSessionID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrPaymentNotFound
			}
			return err
		}

		if payment.Status != domain.PaymentStatusPending {
			result = &TopUpResult{
				PaymentID:        payment.ID,
				AccountID:        payment.AccountID,
				Amount:           payment.Amount,
				AlreadyProcessed: true,
			}
			return nil
		}

		account, err := tx.AccountForUpdate(ctx, payment.AccountID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		now := m.now()

		err = tx.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentStatusCompleted, now)
		if err != nil {
			return err
		}

		newBalance, err := tx.AdjustBalance(ctx, account.ID, payment.Amount)
		if err != nil {
			return err
		}

		result = &TopUpResult{
			PaymentID:  payment.ID,
			AccountID:  account.ID,
			Amount:     payment.Amount,
			NewBalance: newBalance,
		}
		event = &domain.BookingEvent{
			ID:         newEventID(),
			Kind:       domain.EventKindWalletTopUp,
			Account:    recipientOf(account),
			TotalPrice: payment.Amount,
			NewBalance: newBalance,
			OccurredAt: now,
		}

		return nil
	})
	if err != nil {
		m.rejected(ctx, span, err)
		return nil, err
	}

	if event != nil {
		m.metrics.toppedUp.Add(ctx, 1)
		m.notify(*event)
	}

	return result, nil
}

// inTx runs fn as one atomic unit and repeats it while the store reports lock
// or serialization contention.
func (m *Manager) inTx(ctx context.Context, fn func(tx domain.BookingTx) error) error {
	var err error

	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		err = m.store.WithinTx(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}

		m.metrics.conflicts.Add(ctx, 1)
		m.logger.Warn("booking transaction conflicted", "attempt", attempt, "max_attempts", m.cfg.MaxAttempts, "error", err)

		if attempt == m.cfg.MaxAttempts {
			break
		}

		backoff := m.cfg.RetryBackoff*time.Duration(attempt) + rand.N(m.cfg.RetryBackoff)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return classify(err)
}

var terminalErrors = []error{
	domain.ErrInvalidRequest,
	domain.ErrAccountNotFound,
	domain.ErrShowtimeNotFound,
	domain.ErrBookingNotFound,
	domain.ErrPaymentNotFound,
	domain.ErrInsufficientBalance,
	domain.ErrInsufficientSeats,
	domain.ErrBookingClosed,
	domain.ErrAlreadyCancelled,
	domain.ErrConcurrencyConflict,
	domain.ErrDependencyFailure,
}

// classify leaves typed failures untouched and turns anything else coming out
// of the store into a DependencyFailure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	for _, target := range terminalErrors {
		if errors.Is(err, target) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrDependencyFailure, err)
}

func validateCreateInput(input CreateBookingInput) error {
	switch {
	case input.ShowtimeID <= 0:
		return &domain.InvalidRequestError{Field: "showtimeId", Reason: "must be a positive integer"}
	case input.AccountID <= 0:
		return &domain.InvalidRequestError{Field: "accountId", Reason: "must be a positive integer"}
	case input.TicketCount < 1:
		return &domain.InvalidRequestError{Field: "ticketCount", Reason: "must be at least 1"}
	case input.TotalPrice.IsNegative():
		return &domain.InvalidRequestError{Field: "totalPrice", Reason: "must not be negative"}
	case !input.TotalPrice.Equal(input.TotalPrice.Round(2)):
		return &domain.InvalidRequestError{Field: "totalPrice", Reason: "must have at most two decimal places"}
	}

	return nil
}

func (m *Manager) notify(event domain.BookingEvent) {
	if m.notifier == nil {
		return
	}

	m.notifier.Notify(event)
}

func (m *Manager) rejected(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	m.metrics.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", domain.ErrorCode(err))))
}
