package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
)

func (app *Application) SearchBookings(w http.ResponseWriter, r *http.Request, params api.SearchBookingsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filter := toBookingFilter(params)

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		app.badRequestResponse(w, r, fmt.Errorf("from must be on or before to"))
		return
	}

	bookings, metadata, err := app.bookingRepo.Search(r.Context(), filter)
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

func (app *Application) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	stats, err := app.bookingRepo.Stats(r.Context(), today)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	topMovies := make([]api.MovieBookingCount, len(stats.TopMovies))
	for i, m := range stats.TopMovies {
		topMovies[i] = api.MovieBookingCount{
			MovieTitle:   m.MovieTitle,
			BookingCount: m.BookingCount,
		}
	}

	resp := api.BookingStatsResponse{
		TotalBookings:     stats.TotalBookings,
		ActiveBookings:    stats.ActiveBookings,
		CancelledBookings: stats.CancelledBookings,
		TotalRevenue:      stats.TotalRevenue,
		TodayBookings:     stats.TodayBookings,
		TopMovies:         topMovies,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// AdminCancelBooking cancels any account's booking with the same refund as a
// cancellation by its owner.
func (app *Application) AdminCancelBooking(w http.ResponseWriter, r *http.Request, bookingId int) {
	app.cancelBooking(w, r, bookingId)
}

// toBookingFilter treats both dates as whole days: from is the start of its
// day and to the end of its day.
func toBookingFilter(params api.SearchBookingsParams) domain.BookingFilter {
	filter := domain.BookingFilter{
		Status:     domain.BookingStatusAll,
		Pagination: toPagination(params.Page, params.PageSize),
	}

	if params.Status != nil {
		filter.Status = domain.BookingStatusFilter(*params.Status)
	}

	if params.Search != nil {
		filter.Term = *params.Search
	}

	if params.From != nil {
		from := params.From.Time
		filter.From = &from
	}

	if params.To != nil {
		to := params.To.Time.AddDate(0, 0, 1)
		filter.To = &to
	}

	return filter
}
