package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired       = "is required"
	ErrMinValue       = "must be at least %s"
	ErrMaxValue       = "must be at most %s"
	ErrGreaterThan    = "must be greater than %s"
	ErrOneOf          = "must be one of: %s"
	ErrMoney          = "must be a non-negative amount with at most two decimal places"
	ErrPositiveMoney  = "must be a positive amount with at most two decimal places"
	ErrDefaultInvalid = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("money", validateMoney)
	validator.RegisterValidation("positive_money", validatePositiveMoney)
	validator.RegisterValidation("booking_status", validateBookingStatus)

	return validator
}

func validateMoney(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return !amount.IsNegative() && amount.Equal(amount.Round(2))
}

func validatePositiveMoney(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	switch domain.BookingStatusFilter(fl.Field().String()) {
	case domain.BookingStatusAll, domain.BookingStatusActive, domain.BookingStatusCancelled:
		return true
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "money":
		return ErrMoney
	case "positive_money":
		return ErrPositiveMoney
	case "booking_status":
		return fmt.Sprintf(ErrOneOf, "all active cancelled")
	default:
		return ErrDefaultInvalid
	}
}
