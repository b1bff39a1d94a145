package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
	appvalidator "github.com/metinatakli/moviemate/internal/validator"
)

const (
	ErrInternalServer    = "The server encountered a problem and could not process your request"
	ErrNotFound          = "The requested resource not found"
	ErrMethodNotAllowed  = "The %s method is not supported for this resource"
	ErrUnauthorized      = "You must be authenticated to access this resource"
	ErrForbidden         = "You do not have permission to access this resource"
	ErrFailedValidation  = "One or more fields are invalid"
	ErrIdempotencyInUse  = "A request with the same idempotency key is still being processed"
	ErrIdempotencyReused = "The idempotency key was already used with a different request body"
	ErrInvalidStripeSign = "invalid webhook signature"
)

const retryAfterSeconds = "1"

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	app.writeErrorResponse(w, r, status, resp, nil)
}

func (app *Application) writeErrorResponse(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	resp api.ErrorResponse,
	headers http.Header) {

	err := app.writeJSON(w, status, resp, headers)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// invalidParamResponse reports path, query and header values the router could
// not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		err = fmt.Errorf("invalid %s parameter", formatErr.ParamName)
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	headers := http.Header{}
	headers.Set("WWW-Authenticate", "Bearer")

	resp := api.ErrorResponse{
		Message:   ErrUnauthorized,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	app.writeErrorResponse(w, r, http.StatusUnauthorized, resp, headers)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrors)),
	}

	for _, fieldErr := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: lowerFirst(fieldErr.Field()),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

var bookingErrorStatuses = []struct {
	target error
	status int
}{
	{domain.ErrInvalidRequest, http.StatusBadRequest},
	{domain.ErrAccountNotFound, http.StatusNotFound},
	{domain.ErrShowtimeNotFound, http.StatusNotFound},
	{domain.ErrBookingNotFound, http.StatusNotFound},
	{domain.ErrPaymentNotFound, http.StatusNotFound},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired},
	{domain.ErrInsufficientSeats, http.StatusConflict},
	{domain.ErrBookingClosed, http.StatusConflict},
	{domain.ErrAlreadyCancelled, http.StatusConflict},
	{domain.ErrConcurrencyConflict, http.StatusConflict},
}

// bookingErrorResponse writes a failure reported by the booking manager. The
// response carries the failure code and, where known, the numbers behind it.
// Retryable failures ask the client to come back after a second.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusServiceUnavailable
	message := domain.ErrDependencyFailure.Error()

	for _, s := range bookingErrorStatuses {
		if errors.Is(err, s.target) {
			status = s.status
			message = s.target.Error()
			break
		}
	}

	resp := api.ErrorResponse{
		Message:   message,
		Code:      domain.ErrorCode(err),
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	var (
		invalidErr *domain.InvalidRequestError
		balanceErr *domain.InsufficientBalanceError
		seatsErr   *domain.InsufficientSeatsError
	)

	switch {
	case errors.As(err, &invalidErr):
		resp.Message = invalidErr.Error()
		resp.Details = map[string]any{"field": invalidErr.Field, "reason": invalidErr.Reason}
	case errors.As(err, &balanceErr):
		resp.Details = map[string]any{
			"required": balanceErr.Required.StringFixed(2),
			"current":  balanceErr.Current.StringFixed(2),
		}
	case errors.As(err, &seatsErr):
		resp.Details = map[string]any{"available": seatsErr.Available, "requested": seatsErr.Requested}
	}

	var headers http.Header
	if domain.IsRetryable(err) {
		headers = http.Header{}
		headers.Set("Retry-After", retryAfterSeconds)
	}

	if status == http.StatusServiceUnavailable {
		app.logError(r, err)
	}

	app.writeErrorResponse(w, r, status, resp, headers)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
