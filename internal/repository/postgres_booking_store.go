package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
)

// PostgresBookingStore runs booking units inside READ COMMITTED transactions
// and serializes writers with row locks on accounts, showtimes, bookings and
// payments.
type PostgresBookingStore struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresBookingStore(db *pgxpool.Pool, lockTimeout time.Duration) *PostgresBookingStore {
	return &PostgresBookingStore{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

func (p *PostgresBookingStore) WithinTx(ctx context.Context, fn func(tx domain.BookingTx) error) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if p.lockTimeout > 0 {
			_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", p.lockTimeout.Milliseconds()))
			if err != nil {
				return err
			}
		}

		return fn(&postgresBookingTx{tx: tx})
	})

	return mapContention(err)
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	txOptions := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// mapContention marks lock and serialization failures so callers can retry
// the whole unit.
func mapContention(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
	}

	return err
}

func isCheckViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.CheckViolation &&
		pgErr.ConstraintName == constraint
}

type postgresBookingTx struct {
	tx pgx.Tx
}

func (t *postgresBookingTx) AccountForUpdate(ctx context.Context, id int) (*domain.Account, error) {
	query := `
		SELECT id, first_name, last_name, email, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR NO KEY UPDATE
	`

	var account domain.Account

	err := t.tx.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &account, nil
}

func (t *postgresBookingTx) AdjustBalance(
	ctx context.Context,
	accountId int,
	delta decimal.Decimal) (decimal.Decimal, error) {

	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`

	var balance decimal.Decimal

	err := t.tx.QueryRow(ctx, query, accountId, delta).Scan(&balance)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return decimal.Zero, domain.ErrRecordNotFound
		case isCheckViolation(err, "accounts_balance_check"):
			return decimal.Zero, domain.ErrInsufficientBalance
		}

		return decimal.Zero, err
	}

	return balance, nil
}

func (t *postgresBookingTx) ShowtimeForUpdate(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT
			s.id,
			s.movie_id,
			s.theater_id,
			s.format_id,
			m.title,
			t.name,
			t.city,
			f.name,
			s.start_time,
			s.price,
			s.capacity,
			s.booked_seats,
			s.booking_enabled,
			s.is_active,
			s.created_at
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		JOIN theaters t ON s.theater_id = t.id
		JOIN formats f ON s.format_id = f.id
		WHERE s.id = $1
		FOR NO KEY UPDATE OF s
	`

	showtime, err := scanShowtime(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return showtime, nil
}

func (t *postgresBookingTx) AdjustBookedSeats(
	ctx context.Context,
	showtimeId int,
	delta int) (*domain.SeatCounter, error) {

	// Both assignments read the pre-update row, so booking_enabled is derived
	// from the new counter.
	query := `
		UPDATE showtimes
		SET
			booked_seats = GREATEST(booked_seats + $2, 0),
			booking_enabled = GREATEST(booked_seats + $2, 0) < capacity,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, capacity, booked_seats, booking_enabled
	`

	var counter domain.SeatCounter

	err := t.tx.QueryRow(ctx, query, showtimeId, delta).Scan(
		&counter.ShowtimeID,
		&counter.Capacity,
		&counter.BookedSeats,
		&counter.BookingEnabled,
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrRecordNotFound
		case isCheckViolation(err, "showtimes_booked_seats_check"):
			return nil, domain.ErrInsufficientSeats
		}

		return nil, err
	}

	return &counter, nil
}

func (t *postgresBookingTx) BookingForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT
			id,
			showtime_id,
			account_id,
			tickets,
			total_price,
			payment_method,
			payment_date,
			is_active,
			created_at,
			cancelled_at
		FROM bookings
		WHERE id = $1
		FOR NO KEY UPDATE
	`

	var booking domain.Booking

	err := t.tx.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.AccountID,
		&booking.TicketCount,
		&booking.TotalPrice,
		&booking.PaymentMethod,
		&booking.PaymentDate,
		&booking.IsActive,
		&booking.CreatedAt,
		&booking.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (t *postgresBookingTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			showtime_id,
			account_id,
			tickets,
			total_price,
			payment_method,
			payment_date,
			is_active,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return t.tx.QueryRow(
		ctx,
		query,
		booking.ShowtimeID,
		booking.AccountID,
		booking.TicketCount,
		booking.TotalPrice,
		booking.PaymentMethod,
		booking.PaymentDate,
		booking.IsActive,
		booking.CreatedAt,
	).Scan(&booking.ID)
}

func (t *postgresBookingTx) DeactivateBooking(ctx context.Context, id int, at time.Time) error {
	query := `
		UPDATE bookings
		SET is_active = FALSE, cancelled_at = $2
		WHERE id = $1 AND is_active
	`

	tag, err := t.tx.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyCancelled
	}

	return nil
}

func (t *postgresBookingTx) PaymentForUpdate(ctx context.Context, checkoutSessionId string) (*domain.Payment, error) {
	query := `
		SELECT
			id,
			account_id,
			checkout_session_id,
			amount,
			currency,
			status,
			error_message,
			payment_date,
			created_at,
			updated_at
		FROM payments
		WHERE checkout_session_id = $1
		FOR NO KEY UPDATE
	`

	var payment domain.Payment

	err := t.tx.QueryRow(ctx, query, checkoutSessionId).Scan(
		&payment.ID,
		&payment.AccountID,
		&payment.CheckoutSessionId,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.ErrorMsg,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

func (t *postgresBookingTx) UpdatePaymentStatus(
	ctx context.Context,
	id int,
	status domain.PaymentStatus,
	at time.Time) error {

	query := `
		UPDATE payments
		SET status = $2, payment_date = $3, updated_at = $3
		WHERE id = $1
	`

	_, err := t.tx.Exec(ctx, query, id, status, at)
	return err
}
