package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	showDateLayout = "2006-01-02"
	showTimeLayout = "15:04"
)

func newShowtimeEvent(
	kind domain.EventKind,
	account *domain.Account,
	showtime *domain.Showtime,
	booking *domain.Booking,
	newBalance decimal.Decimal,
	at time.Time) domain.BookingEvent {

	return domain.BookingEvent{
		ID:          newEventID(),
		Kind:        kind,
		Account:     recipientOf(account),
		MovieTitle:  showtime.MovieTitle,
		TheaterName: showtime.TheaterName,
		TheaterCity: showtime.TheaterCity,
		ShowDate:    showtime.StartTime.Format(showDateLayout),
		ShowTime:    showtime.StartTime.Format(showTimeLayout),
		Format:      showtime.Format,
		TicketCount: booking.TicketCount,
		TotalPrice:  booking.TotalPrice,
		BookingID:   booking.ID,
		NewBalance:  newBalance,
		OccurredAt:  at,
	}
}

func recipientOf(account *domain.Account) domain.Recipient {
	return domain.Recipient{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}
}

func newEventID() string {
	return uuid.NewString()
}
