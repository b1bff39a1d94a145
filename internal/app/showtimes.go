package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
)

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request, showtimeId int) {
	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, domain.ErrShowtimeNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

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

	showtime := &domain.Showtime{
		MovieID:        input.MovieId,
		TheaterID:      input.TheaterId,
		FormatID:       input.FormatId,
		StartTime:      input.StartTime,
		Price:          input.Price,
		Capacity:       input.Capacity,
		BookingEnabled: true,
		IsActive:       true,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("movie, theater or format not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("showtime created", "showtime_id", showtime.ID, "capacity", showtime.Capacity)

	err = app.writeJSON(w, http.StatusCreated, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteShowtime soft deletes a showtime. Existing bookings are left alone;
// new bookings are refused as closed.
func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request, showtimeId int) {
	err := app.showtimeRepo.Deactivate(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, domain.ErrShowtimeNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("showtime deactivated", "showtime_id", showtimeId)

	resp := api.MessageResponse{Message: "showtime deleted"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiShowtime(s *domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:             s.ID,
		MovieId:        s.MovieID,
		TheaterId:      s.TheaterID,
		FormatId:       s.FormatID,
		MovieTitle:     s.MovieTitle,
		TheaterName:    s.TheaterName,
		TheaterCity:    s.TheaterCity,
		Format:         s.Format,
		StartTime:      s.StartTime,
		Price:          s.Price,
		Capacity:       s.Capacity,
		BookedSeats:    s.BookedSeats,
		AvailableSeats: s.AvailableSeats(),
		BookingEnabled: s.BookingEnabled,
		IsActive:       s.IsActive,
	}
}
