package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
)

func (app *Application) GetCurrentAccount(w http.ResponseWriter, r *http.Request) {
	accountId := app.contextGetAccountId(r)

	account, err := app.accountRepo.GetById(r.Context(), accountId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, domain.ErrAccountNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.Account{
		Id:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsOfAccount(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetBookingsOfAccountParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	accountId := app.contextGetAccountId(r)
	pagination := toPagination(params.Page, params.PageSize)

	bookings, metadata, err := app.bookingRepo.GetByAccountId(r.Context(), accountId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingsResponse{
		Bookings: toApiBookingDetails(bookings),
		Metadata: *toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
