package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventKindConfirmation EventKind = "confirmation"
	EventKindCancellation EventKind = "cancellation"
	EventKindWalletTopUp  EventKind = "wallet_topup"
)

// Recipient is the account side of a BookingEvent.
type Recipient struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BookingEvent is handed to the notification sinks after a booking unit commits.
// Showtime fields are empty for wallet top-ups.
type BookingEvent struct {
	ID          string          `json:"id"`
	Kind        EventKind       `json:"kind"`
	Account     Recipient       `json:"account"`
	MovieTitle  string          `json:"movieTitle,omitempty"`
	TheaterName string          `json:"theatreName,omitempty"`
	TheaterCity string          `json:"theatreCity,omitempty"`
	ShowDate    string          `json:"showDate,omitempty"`
	ShowTime    string          `json:"showTime,omitempty"`
	Format      string          `json:"format,omitempty"`
	TicketCount int             `json:"ticketCount,omitempty"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	BookingID   int             `json:"bookingId,omitempty"`
	NewBalance  decimal.Decimal `json:"newBalance"`
	OccurredAt  time.Time       `json:"occurredAt"`
}
