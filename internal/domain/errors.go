package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// Booking failures. Only ErrConcurrencyConflict and ErrDependencyFailure are
// worth retrying with the same input.
var (
	ErrInvalidRequest      = errors.New("invalid booking request")
	ErrAccountNotFound     = errors.New("account not found")
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientSeats   = errors.New("not enough seats available")
	ErrBookingClosed       = errors.New("booking is closed for this showtime")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
	ErrConcurrencyConflict = errors.New("booking could not be completed due to concurrent updates, please try again")
	ErrDependencyFailure   = errors.New("a required service is unavailable, please try again later")
)

type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

type InsufficientBalanceError struct {
	Required decimal.Decimal
	Current  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, current %s",
		e.Required.StringFixed(2), e.Current.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

type InsufficientSeatsError struct {
	Available int
	Requested int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("not enough seats available: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientSeatsError) Unwrap() error {
	return ErrInsufficientSeats
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) || errors.Is(err, ErrDependencyFailure)
}

var errorCodes = []struct {
	target error
	code   string
}{
	{ErrInvalidRequest, "invalid_request"},
	{ErrAccountNotFound, "account_not_found"},
	{ErrShowtimeNotFound, "showtime_not_found"},
	{ErrBookingNotFound, "booking_not_found"},
	{ErrPaymentNotFound, "payment_not_found"},
	{ErrInsufficientBalance, "insufficient_balance"},
	{ErrInsufficientSeats, "insufficient_seats"},
	{ErrBookingClosed, "booking_closed"},
	{ErrAlreadyCancelled, "already_cancelled"},
	{ErrConcurrencyConflict, "concurrency_conflict"},
}

// ErrorCode returns the stable machine-readable name of a booking failure.
// Anything unrecognised is reported as a dependency failure.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.target) {
			return e.code
		}
	}

	return "dependency_failure"
}
