package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/booking"
	"github.com/metinatakli/moviemate/internal/domain"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request, params api.CreateBookingParams) {
	logger := app.contextGetLogger(r)
	accountId := app.contextGetAccountId(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	key, err := idempotencyKey(params)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if key != "" {
		cacheKey := idempotencyCacheKey(accountId, key)

		requestHash, err := fingerprintRequest(input)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		replay, claimed, err := app.claimIdempotencyKey(r.Context(), cacheKey)
		if err != nil {
			app.bookingErrorResponse(w, r, fmt.Errorf("%w: %w", domain.ErrDependencyFailure, err))
			return
		}

		if replay != nil && replay.RequestHash != requestHash {
			app.errorResponse(w, r, http.StatusUnprocessableEntity, ErrIdempotencyReused)
			return
		}

		if replay != nil {
			logger.Info("replaying booking response", "idempotency_key", key)
			app.writeIdempotentReplay(w, r, replay)
			return
		}

		if !claimed {
			app.editConflictResponseWithErr(w, r, errors.New(ErrIdempotencyInUse))
			return
		}

		resp, ok := app.createBooking(w, r, accountId, input)
		if !ok {
			app.releaseIdempotencyKey(r, cacheKey)
			return
		}

		app.storeIdempotentResponse(r, cacheKey, requestHash, http.StatusCreated, resp)
		return
	}

	app.createBooking(w, r, accountId, input)
}

// createBooking runs the booking and writes the outcome. ok reports whether
// the booking was committed; the body is returned so it can be remembered
// under an idempotency key.
func (app *Application) createBooking(
	w http.ResponseWriter,
	r *http.Request,
	accountId int,
	input api.CreateBookingRequest) (*api.CreateBookingResponse, bool) {

	result, err := app.bookings.CreateBooking(r.Context(), booking.CreateBookingInput{
		AccountID:     accountId,
		ShowtimeID:    input.ShowtimeId,
		TicketCount:   input.TicketCount,
		TotalPrice:    input.TotalPrice,
		PaymentMethod: domain.PaymentMethodWallet,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return nil, false
	}

	app.contextGetLogger(r).Info("booking created",
		"booking_id", result.Booking.ID,
		"showtime_id", result.Booking.ShowtimeID,
		"tickets", result.Booking.TicketCount,
	)

	resp := &api.CreateBookingResponse{
		Message:    "Booking created successfully",
		Booking:    toApiBooking(result.Booking),
		NewBalance: result.NewBalance,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}

	return resp, true
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	detail, ok := app.ownedBooking(w, r, bookingId)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, toApiBookingDetail(*detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	_, ok := app.ownedBooking(w, r, bookingId)
	if !ok {
		return
	}

	app.cancelBooking(w, r, bookingId)
}

func (app *Application) cancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	result, err := app.bookings.CancelBooking(r.Context(), bookingId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("booking cancelled",
		"booking_id", result.BookingID,
		"refunded", result.RefundedAmount.StringFixed(2),
	)

	resp := api.CancelBookingResponse{
		Message:        "Booking cancelled successfully",
		BookingId:      result.BookingID,
		RefundedAmount: result.RefundedAmount,
		NewBalance:     result.NewBalance,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ownedBooking loads a booking of the authenticated account. Bookings of other
// accounts are reported as missing.
func (app *Application) ownedBooking(w http.ResponseWriter, r *http.Request, bookingId int) (*domain.BookingDetail, bool) {
	detail, err := app.bookingRepo.GetById(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.bookingErrorResponse(w, r, domain.ErrBookingNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	if detail.AccountID != app.contextGetAccountId(r) {
		app.bookingErrorResponse(w, r, domain.ErrBookingNotFound)
		return nil, false
	}

	return detail, true
}

func toApiBooking(b *domain.Booking) api.Booking {
	return api.Booking{
		Id:            b.ID,
		ShowtimeId:    b.ShowtimeID,
		AccountId:     b.AccountID,
		TicketCount:   b.TicketCount,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		PaymentDate:   b.PaymentDate,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
	}
}

func toApiBookingDetail(b domain.BookingDetail) api.BookingDetail {
	return api.BookingDetail{
		Id:            b.ID,
		ShowtimeId:    b.ShowtimeID,
		AccountId:     b.AccountID,
		TicketCount:   b.TicketCount,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		PaymentDate:   b.PaymentDate,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
		AccountEmail:  b.AccountEmail,
		MovieTitle:    b.MovieTitle,
		TheaterName:   b.TheaterName,
		TheaterCity:   b.TheaterCity,
		Format:        b.Format,
		StartTime:     b.StartTime,
	}
}

func toApiBookingDetails(bookings []domain.BookingDetail) []api.BookingDetail {
	details := make([]api.BookingDetail, len(bookings))

	for i, v := range bookings {
		details[i] = toApiBookingDetail(v)
	}

	return details
}
